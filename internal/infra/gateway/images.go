package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
)

const opImages = "images"

// ImageRequest searches the image source for photos matching Query.
type ImageRequest struct {
	Query string
}

// ImagePayload is the decoded image search response.
type ImagePayload struct {
	Total      int
	TotalPages int
	Results    []entities.ImageCandidate
}

func (ImagePayload) payload() {}

// URLs returns every non-empty URL of the given size label, in result order.
func (p ImagePayload) URLs(size string) []string {
	out := make([]string, 0, len(p.Results))
	for _, c := range p.Results {
		if u, ok := c.URL(size); ok {
			out = append(out, u)
		}
	}
	return out
}

type imageResponse struct {
	Total      int                        `json:"total"`
	TotalPages int                        `json:"total_pages"`
	Results    *[]entities.ImageCandidate `json:"results"`
}

func (r ImageRequest) op() string { return opImages }

func (r ImageRequest) buildURL(g *Gateway) (string, error) {
	if strings.TrimSpace(r.Query) == "" {
		return "", newError(opImages, KindInvalidParameters, errors.New("query is empty"))
	}

	params := url.Values{"query": []string{r.Query}}
	if g.accessKey != "" {
		params.Set("client_id", g.accessKey)
	}

	return buildEndpoint(opImages, g.imagesURL, params)
}

func (r ImageRequest) decode(body []byte) (Payload, error) {
	var raw imageResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal image response: %w", err)
	}
	if raw.Results == nil {
		return nil, errors.New("missing results")
	}

	return ImagePayload{
		Total:      raw.Total,
		TotalPages: raw.TotalPages,
		Results:    *raw.Results,
	}, nil
}

// FetchImages is a typed shortcut for Fetch with an ImageRequest.
func (g *Gateway) FetchImages(ctx context.Context, query string) (ImagePayload, error) {
	p, err := g.Fetch(ctx, ImageRequest{Query: query})
	if err != nil {
		return ImagePayload{}, err
	}

	ip, ok := p.(ImagePayload)
	if !ok {
		return ImagePayload{}, newError(opImages, KindDecode, fmt.Errorf("unexpected payload %T", p))
	}
	return ip, nil
}
