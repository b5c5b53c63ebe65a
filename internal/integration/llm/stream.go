package llm

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/futig/interview-agent/internal/entity"
)

const (
	framePrefix   = "data:"
	doneSentinel  = "[DONE]"
	contentMarker = `"content":"`
	maxFrameSize  = 1 << 20
)

type streamResult struct {
	fragments int
	skipped   int
	stopped   bool
}

// readFrames reads "data:" frames from r and yields every non-empty content
// fragment until the end-of-stream sentinel, EOF, a read error or the
// consumer stopping. Lines without the frame prefix are ignored.
func readFrames(r io.Reader, yield func(string) bool) (streamResult, error) {
	var res streamResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxFrameSize)

	for scanner.Scan() {
		payload, ok := framePayload(scanner.Text())
		if !ok {
			continue
		}
		if payload == doneSentinel {
			return res, nil
		}

		fragment, ok := extractContent(payload)
		if !ok {
			res.skipped++
			continue
		}
		if fragment == "" {
			continue
		}

		res.fragments++
		if !yield(fragment) {
			res.stopped = true
			return res, nil
		}
	}

	return res, scanner.Err()
}

func framePayload(line string) (string, bool) {
	line = strings.TrimRight(line, "\r")
	if !strings.HasPrefix(line, framePrefix) {
		return "", false
	}

	payload := strings.TrimSpace(line[len(framePrefix):])
	return payload, payload != ""
}

// extractContent pulls the text delta out of one frame payload and reports
// whether the payload could be understood at all. The known
// chunk shape is tried first, then a document-order depth-first search for a
// string "content" field, and for payloads that are not valid JSON a raw scan
// for the "content":" pattern.
func extractContent(payload string) (string, bool) {
	data := []byte(payload)

	var chunk entity.LLMChatResponse
	if err := json.Unmarshal(data, &chunk); err == nil {
		if text, ok := chunkContent(&chunk); ok {
			return text, true
		}
	}

	if json.Valid(data) {
		// A well-formed frame without text (role announcement, usage) carries no fragment
		text, _ := searchContent(data)
		return text, true
	}

	return scanContent(payload)
}

func chunkContent(chunk *entity.LLMChatResponse) (string, bool) {
	for _, choice := range chunk.Choices {
		if choice.Delta != nil && choice.Delta.Content != nil {
			return *choice.Delta.Content, true
		}
		if choice.Message != nil {
			return choice.Message.Content, true
		}
	}
	return "", false
}

type jsonContainer struct {
	object    bool
	expectKey bool
}

// searchContent walks the JSON document in order and returns the first
// string value stored under a "content" key at any depth.
func searchContent(data []byte) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var stack []jsonContainer
	underContent := false

	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}

		if delim, ok := tok.(json.Delim); ok {
			underContent = false
			switch delim {
			case '{':
				stack = append(stack, jsonContainer{object: true, expectKey: true})
			case '[':
				stack = append(stack, jsonContainer{})
			case '}', ']':
				stack = stack[:len(stack)-1]
				markValueDone(stack)
			}
			continue
		}

		if len(stack) == 0 {
			return "", false
		}

		top := &stack[len(stack)-1]
		if top.object && top.expectKey {
			key, _ := tok.(string)
			underContent = key == "content"
			top.expectKey = false
			continue
		}

		if s, ok := tok.(string); ok && underContent {
			return s, true
		}
		underContent = false
		markValueDone(stack)
	}
}

func markValueDone(stack []jsonContainer) {
	if len(stack) > 0 && stack[len(stack)-1].object {
		stack[len(stack)-1].expectKey = true
	}
}

// scanContent finds the literal "content":" in a payload that failed to
// parse and decodes the string value that follows it.
func scanContent(payload string) (string, bool) {
	idx := strings.Index(payload, contentMarker)
	if idx < 0 {
		return "", false
	}

	start := idx + len(contentMarker)
	for i := start; i < len(payload); i++ {
		switch payload[i] {
		case '\\':
			i++
		case '"':
			var text string
			if err := json.Unmarshal([]byte(payload[start-1:i+1]), &text); err != nil {
				return "", false
			}
			return text, true
		}
	}

	return "", false
}
