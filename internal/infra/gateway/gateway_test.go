package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
)

const triviaBody = `{
  "response_code": 0,
  "results": [
    {
      "category": "Entertainment: Video Games",
      "type": "multiple",
      "difficulty": "easy",
      "question": "Who is the main character of &quot;The Legend of Zelda&quot;?",
      "correct_answer": "Link",
      "incorrect_answers": ["Zelda", "Ganon", "Zelda"]
    }
  ]
}`

const imagesBody = `{
  "total": 2,
  "total_pages": 1,
  "results": [
    {"urls": {"raw": "https://img/raw1", "regular": "https://img/regular1"}},
    {"urls": {"small": "https://img/small2", "regular": "https://img/regular2"}}
  ]
}`

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Config{
		TriviaURL:      srv.URL + "/api.php",
		ImagesURL:      srv.URL + "/search/photos",
		ImageAccessKey: "test-key",
		Timeout:        2 * time.Second,
	}, nil)
}

func TestFetch_Trivia(t *testing.T) {
	var gotQuery string
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(triviaBody))
	})

	p, err := g.Fetch(context.Background(), TriviaRequest{Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, "amount=10", gotQuery)

	tp, ok := p.(TriviaPayload)
	require.True(t, ok, "expected TriviaPayload, got %T", p)
	assert.Equal(t, entities.ResponseSuccess, tp.ResponseCode)
	require.Len(t, tp.Results, 1)

	q := tp.Results[0]
	assert.Equal(t, "Entertainment: Video Games", q.Category)
	assert.Equal(t, "Link", q.CorrectAnswer)
	assert.Equal(t, []string{"Zelda", "Ganon", "Zelda"}, q.IncorrectAnswers)
	assert.Equal(t, `Who is the main character of "The Legend of Zelda"?`, q.PromptDecoded())
}

func TestFetch_Images(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "Science & Nature", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("client_id"))
		assert.Contains(t, r.URL.RawQuery, "query=Science%20%26%20Nature")
		_, _ = w.Write([]byte(imagesBody))
	})

	ip, err := g.FetchImages(context.Background(), "Science & Nature")
	require.NoError(t, err)
	assert.Equal(t, 2, ip.Total)
	assert.Equal(t, 1, ip.TotalPages)
	require.Len(t, ip.Results, 2)
	assert.Equal(t, []string{"https://img/regular1", "https://img/regular2"}, ip.URLs(entities.ImageSizeRegular))
	assert.Equal(t, []string{"https://img/small2"}, ip.URLs(entities.ImageSizeSmall))
}

func TestFetch_InvalidParameters(t *testing.T) {
	called := false
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	tests := []struct {
		name string
		req  Request
	}{
		{name: "zero amount", req: TriviaRequest{Amount: 0}},
		{name: "negative amount", req: TriviaRequest{Amount: -3}},
		{name: "empty query", req: ImageRequest{Query: ""}},
		{name: "blank query", req: ImageRequest{Query: "   "}},
		{name: "nil request", req: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := g.Fetch(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrInvalidParameters)

			var fe *Error
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, KindInvalidParameters, fe.Kind)
		})
	}
	assert.False(t, called, "no request must reach the server")
}

func TestFetch_MalformedEndpoint(t *testing.T) {
	g := New(Config{TriviaURL: "://missing-scheme", ImagesURL: "relative/path"}, nil)

	_, err := g.Fetch(context.Background(), TriviaRequest{Amount: 5})
	assert.ErrorIs(t, err, ErrMalformedEndpoint)

	_, err = g.Fetch(context.Background(), ImageRequest{Query: "History"})
	assert.ErrorIs(t, err, ErrMalformedEndpoint)
}

func TestFetch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	g := New(Config{TriviaURL: base, ImagesURL: base}, nil)

	_, err := g.Fetch(context.Background(), TriviaRequest{Amount: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.NotNil(t, fe.Err, "transport error must wrap the cause")
}

func TestFetch_NonSuccessStatusIsTransportFailure(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := g.Fetch(context.Background(), ImageRequest{Query: "Art"})
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "429")
}

func TestFetch_DecodeFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
		req  Request
	}{
		{name: "not json", body: "<html>oops</html>", req: TriviaRequest{Amount: 5}},
		{name: "trivia without results", body: `{"response_code": 0}`, req: TriviaRequest{Amount: 5}},
		{name: "trivia without code", body: `{"results": []}`, req: TriviaRequest{Amount: 5}},
		{name: "trivia wrong type", body: `{"response_code": "zero", "results": []}`, req: TriviaRequest{Amount: 5}},
		{name: "images without results", body: `{"total": 0}`, req: ImageRequest{Query: "Art"}},
		{name: "images wrong urls", body: `{"results": [{"urls": ["a"]}]}`, req: ImageRequest{Query: "Art"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := g.Fetch(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrDecode)
			assert.NotErrorIs(t, err, ErrTransport)
		})
	}
}

func TestFetch_NonZeroResponseCodeIsDecoded(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code": 1, "results": []}`))
	})

	tp, err := g.FetchTrivia(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, entities.ResponseNoResults, tp.ResponseCode)
	assert.Empty(t, tp.Results)
}

func TestError_Message(t *testing.T) {
	err := newError(opImages, KindDecode, errors.New("boom"))
	assert.True(t, strings.HasPrefix(err.Error(), "fetch images: decode failure"))
	assert.Equal(t, "fetch trivia: invalid parameters", newError(opTrivia, KindInvalidParameters, nil).Error())
}
