package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
)

const opTrivia = "trivia"

// TriviaRequest asks the trivia source for Amount questions.
type TriviaRequest struct {
	Amount int
}

// TriviaPayload is the decoded trivia response.
type TriviaPayload struct {
	ResponseCode entities.ResponseCode
	Results      []entities.Question
}

func (TriviaPayload) payload() {}

type triviaResponse struct {
	ResponseCode *int                 `json:"response_code"`
	Results      *[]entities.Question `json:"results"`
}

func (r TriviaRequest) op() string { return opTrivia }

func (r TriviaRequest) buildURL(g *Gateway) (string, error) {
	if r.Amount <= 0 {
		return "", newError(opTrivia, KindInvalidParameters, fmt.Errorf("amount must be positive, got %d", r.Amount))
	}

	return buildEndpoint(opTrivia, g.triviaURL, url.Values{
		"amount": []string{strconv.Itoa(r.Amount)},
	})
}

func (r TriviaRequest) decode(body []byte) (Payload, error) {
	var raw triviaResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal trivia response: %w", err)
	}
	if raw.ResponseCode == nil {
		return nil, errors.New("missing response_code")
	}
	if raw.Results == nil {
		return nil, errors.New("missing results")
	}

	return TriviaPayload{
		ResponseCode: entities.ResponseCode(*raw.ResponseCode),
		Results:      *raw.Results,
	}, nil
}

// FetchTrivia is a typed shortcut for Fetch with a TriviaRequest.
func (g *Gateway) FetchTrivia(ctx context.Context, amount int) (TriviaPayload, error) {
	p, err := g.Fetch(ctx, TriviaRequest{Amount: amount})
	if err != nil {
		return TriviaPayload{}, err
	}

	tp, ok := p.(TriviaPayload)
	if !ok {
		return TriviaPayload{}, newError(opTrivia, KindDecode, fmt.Errorf("unexpected payload %T", p))
	}
	return tp, nil
}
