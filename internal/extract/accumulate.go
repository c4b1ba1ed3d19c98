package extract

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	ssePrefix  = "data: "
	sseDone    = "[DONE]"
	maxSSELine = 1 << 20
)

// Fragment is one incremental unit of a streamed model response.
type Fragment struct {
	Done bool
	Text string
}

// Accumulate concatenates the text of content-bearing fragments in order,
// stopping at the first end-of-stream fragment or source exhaustion.
func Accumulate(fragments []Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		if f.Done {
			break
		}
		b.WriteString(f.Text)
	}
	return b.String()
}

// sseChunk models one OpenAI-compatible streaming completion chunk.
type sseChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// AccumulateSSE reads a server-sent-event stream of completion chunks and
// returns the concatenated delta content. Lines that are not "data: " events
// and event payloads that fail to parse are skipped. A read failure on the
// underlying source returns an empty string and the error; the stream ending
// without a [DONE] sentinel is not an error.
func AccumulateSSE(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxSSELine)

	var b strings.Builder
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, ssePrefix) {
			continue
		}
		data := line[len(ssePrefix):]
		if data == sseDone {
			break
		}

		var chunk sseChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) > 0 {
			b.WriteString(chunk.Choices[0].Delta.Content)
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("reading stream: %w", err)
	}
	return b.String(), nil
}
