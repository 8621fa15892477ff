package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "quot", in: "Who said &quot;Hello&quot;?", want: `Who said "Hello"?`},
		{name: "numeric apostrophe", in: "It&#039;s", want: "It's"},
		{name: "hex apostrophe", in: "It&#x27;s", want: "It's"},
		{name: "amp", in: "Rock &amp; Roll", want: "Rock & Roll"},
		{name: "accented", in: "Pok&eacute;mon", want: "Pokémon"},
		{name: "no entities", in: "Plain text", want: "Plain text"},
		{name: "bare ampersand", in: "AT&T", want: "AT&T"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.in))
		})
	}
}

func TestDecode_InvalidUTF8ReturnsInput(t *testing.T) {
	in := "bad \xff&amp; bytes"
	assert.Equal(t, in, Decode(in))
}

func TestDecodeAll_KeepsDuplicatesAndOrder(t *testing.T) {
	in := []string{"&quot;A&quot;", "B", "&quot;A&quot;"}
	assert.Equal(t, []string{`"A"`, "B", `"A"`}, DecodeAll(in))
}
