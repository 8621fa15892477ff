package entities

import "strconv"

// ResponseCode is the status code the trivia source puts in every response body.
type ResponseCode int

const (
	ResponseSuccess          ResponseCode = 0
	ResponseNoResults        ResponseCode = 1 // not enough questions for the query
	ResponseInvalidParameter ResponseCode = 2
	ResponseTokenNotFound    ResponseCode = 3
	ResponseTokenEmpty       ResponseCode = 4
	ResponseRateLimit        ResponseCode = 5
)

func (c ResponseCode) String() string {
	switch c {
	case ResponseSuccess:
		return "success"
	case ResponseNoResults:
		return "no_results"
	case ResponseInvalidParameter:
		return "invalid_parameter"
	case ResponseTokenNotFound:
		return "token_not_found"
	case ResponseTokenEmpty:
		return "token_empty"
	case ResponseRateLimit:
		return "rate_limit"
	default:
		return "code_" + strconv.Itoa(int(c))
	}
}

// Question count bounds a player may choose from.
const (
	MinQuestions = 5
	MaxQuestions = 30
)
