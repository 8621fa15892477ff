package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionPlay    = "play"
	actionAnswer  = "answer"
	actionNext    = "next"
	actionRestart = "restart"
	actionMenu    = "menu"
	actionCount   = "count"
	actionOptions = "options"
	actionStats   = "stats"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildAnswerCallback refers to the idx-th answer button of the message
// rendered from snapshot version.
func buildAnswerCallback(version uint64, idx int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.FormatUint(version, 10), strconv.Itoa(idx)},
	}.encode()
}

func buildCountCallback(n int) string {
	return callbackData{
		Action: actionCount,
		Params: []string{strconv.Itoa(n)},
	}.encode()
}

// answer extracts the parameters of an answer callback.
func (cd callbackData) answer() (version uint64, idx int, ok bool) {
	if cd.Action != actionAnswer || len(cd.Params) != 2 {
		return 0, 0, false
	}

	version, err := strconv.ParseUint(cd.Params[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	idx, err = strconv.Atoi(cd.Params[1])
	if err != nil || idx < 0 {
		return 0, 0, false
	}

	return version, idx, true
}

// count extracts the question count of a count callback.
func (cd callbackData) count() (int, bool) {
	if cd.Action != actionCount || len(cd.Params) != 1 {
		return 0, false
	}

	n, err := strconv.Atoi(cd.Params[0])
	if err != nil {
		return 0, false
	}
	return n, true
}
