package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sseSample = "data: {\"a\":1}\r\ndata: [DONE]\r\n"

func TestPush_SingleCall(t *testing.T) {
	a := New()
	got := a.Push(sseSample)
	assert.Equal(t, []string{`{"a":1}`}, got)
	assert.Zero(t, a.Buffered())
	assert.Empty(t, a.Flush())
}

func TestPush_SplitAtEveryByte(t *testing.T) {
	for cut := 0; cut <= len(sseSample); cut++ {
		a := New()
		var got []string
		got = append(got, a.Push(sseSample[:cut])...)
		got = append(got, a.Push(sseSample[cut:])...)
		got = append(got, a.Flush()...)
		assert.Equal(t, []string{`{"a":1}`}, got, "cut at %d", cut)
	}
}

func TestPush_ByteByByte(t *testing.T) {
	input := "event: message\rid: 7\rdata: first\r\r\rplain text\n\ndata:   second  \r\n"
	a := New()
	var got []string
	for i := 0; i < len(input); i++ {
		got = append(got, a.Push(input[i:i+1])...)
	}
	got = append(got, a.Flush()...)
	assert.Equal(t, []string{"first", "plain text", "second"}, got)
}

func TestPush_BareCarriageReturns(t *testing.T) {
	a := New()
	got := a.Push(`{"type":"a"}` + "\r" + `{"type":"b"}` + "\r" + `{"type":"c`)
	assert.Equal(t, []string{`{"type":"a"}`, `{"type":"b"}`}, got)
	assert.Equal(t, len(`{"type":"c`), a.Buffered())

	got = a.Push(`"}` + "\r")
	assert.Equal(t, []string{`{"type":"c"}`}, got)
}

func TestPush_Empty(t *testing.T) {
	a := New()
	assert.Nil(t, a.Push(""))
	assert.Empty(t, a.Push("\r\n\r\n"))
	assert.Zero(t, a.Buffered())
}

func TestFlush_ReturnsAllPending(t *testing.T) {
	a := New()
	require.Empty(t, a.Push("data: tail"))
	assert.Equal(t, []string{"tail"}, a.Flush())
	assert.Zero(t, a.Buffered())
	assert.Empty(t, a.Flush())
}

func TestSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"  hello  ", "hello", true},
		{"", "", false},
		{"   ", "", false},
		{"data: x", "x", true},
		{"data:x", "x", true},
		{"data:", "", false},
		{"data: [DONE]", "", false},
		{"data: [done]", "", false},
		{"event: delta", "", false},
		{"id: 42", "", false},
		{"identity: kept", "identity: kept", true},
		{`{"msg":"data: inside"}`, `{"msg":"data: inside"}`, true},
	}
	for _, tt := range tests {
		got, ok := Segment(tt.in)
		assert.Equal(t, tt.ok, ok, "Segment(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Segment(%q)", tt.in)
	}
}

func FuzzPushSplitInvariance(f *testing.F) {
	f.Add(sseSample, 5)
	f.Add("a\rb\r\nc", 2)
	f.Add("event: x\ndata: y\n", 9)

	f.Fuzz(func(t *testing.T, input string, cut int) {
		whole := New()
		want := append(whole.Push(input), whole.Flush()...)

		n := len(input) + 1
		cut = ((cut % n) + n) % n
		split := New()
		got := append(split.Push(input[:cut]), split.Push(input[cut:])...)
		got = append(got, split.Flush()...)

		if len(got) != len(want) {
			t.Fatalf("split at %d: got %q, want %q", cut, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("split at %d: got %q, want %q", cut, got, want)
			}
		}
	})
}
