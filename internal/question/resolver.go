package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sgoswami/tutorbox/internal/match"
)

// ErrMalformedContent indicates the generator payload could not be parsed
// into a question array after all repair attempts.
var ErrMalformedContent = errors.New("malformed generator content")

// rawRecord is a loosely-typed question record as the generator emits it.
// Field shapes are not trusted: the correct answer may arrive as an index,
// a numeral string, a letter, or the literal option text.
type rawRecord struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	TopicID      string          `json:"topic_id"`
	Prompt       string          `json:"prompt"`
	Question     string          `json:"question"`
	Explanation  string          `json:"explanation"`
	Level        string          `json:"level"`
	Options      []string        `json:"options"`
	CorrectIndex json.RawMessage `json:"correct_index"`
	Answer       json.RawMessage `json:"answer"`
	Statements   []rawStatement  `json:"statements"`
	Expected     json.RawMessage `json:"expected"`
}

type rawStatement struct {
	Text      string `json:"text"`
	IsTrue    *bool  `json:"is_true"`
	IsCorrect *bool  `json:"is_correct"`
}

// Resolve repairs and validates a raw generator payload into the internal
// question model. Parsing is attempted in order of increasing permissiveness:
// the raw text directly, the text with code fences stripped, then the
// substring between the first '[' and last ']'. Individual records with
// missing fields are defaulted rather than rejected, so one degraded record
// never fails the whole batch.
func Resolve(raw string) ([]Question, error) {
	records, err := parseRecords(raw)
	if err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(records))
	for _, rec := range records {
		questions = append(questions, mapRecord(rec))
	}
	return questions, nil
}

// parseRecords runs the repair pipeline; the first successful parse wins.
func parseRecords(raw string) ([]rawRecord, error) {
	var records []rawRecord

	if err := json.Unmarshal([]byte(raw), &records); err == nil {
		return records, nil
	}

	stripped := stripCodeFences(raw)
	if err := json.Unmarshal([]byte(stripped), &records); err == nil {
		return records, nil
	}

	// Leading or trailing prose around the array: take the outermost
	// bracketed substring.
	start := strings.Index(stripped, "[")
	end := strings.LastIndex(stripped, "]")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(stripped[start:end+1]), &records); err == nil {
			return records, nil
		}
	}

	return nil, fmt.Errorf("%w: no parse attempt succeeded", ErrMalformedContent)
}

// stripCodeFences removes markdown code-block wrapping from LLM output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// mapRecord converts one raw record into the internal model, defaulting
// missing fields.
func mapRecord(rec rawRecord) Question {
	q := Question{
		ID:          rec.ID,
		TopicID:     rec.TopicID,
		Prompt:      rec.Prompt,
		Explanation: rec.Explanation,
		Level:       mapLevel(rec.Level),
		Kind:        mapKind(rec.Type),
	}
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.Prompt == "" {
		q.Prompt = rec.Question
	}

	switch q.Kind {
	case KindMultipleChoice:
		q.Options = rec.Options
		q.CorrectIndex = resolveCorrectIndex(rec)

	case KindTrueFalse:
		q.Statements = mapStatements(rec.Statements)

	case KindShortAnswer:
		q.Expected = rawToString(rec.Expected)
		if q.Expected == "" {
			q.Expected = rawToString(rec.Answer)
		}
	}

	return q
}

func mapKind(s string) Kind {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "multiple_choice", "multiplechoice", "mc":
		return KindMultipleChoice
	case "true_false", "truefalse", "tf":
		return KindTrueFalse
	case "short_answer", "shortanswer", "sa":
		return KindShortAnswer
	}
	return KindMultipleChoice
}

func mapLevel(s string) Level {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case string(LevelUnderstanding):
		return LevelUnderstanding
	case string(LevelApplication):
		return LevelApplication
	}
	return LevelRecognition
}

// mapStatements pads or truncates to exactly ClusterSize statements.
// A generator that produces fewer than 4 statements yields blank padding
// statements marked false; the batch is never rejected for this.
func mapStatements(raw []rawStatement) []Statement {
	out := make([]Statement, 0, ClusterSize)
	for _, rs := range raw {
		if len(out) == ClusterSize {
			break
		}
		st := Statement{Text: rs.Text}
		if rs.IsTrue != nil {
			st.IsTrue = *rs.IsTrue
		} else if rs.IsCorrect != nil {
			st.IsTrue = *rs.IsCorrect
		}
		out = append(out, st)
	}
	for len(out) < ClusterSize {
		out = append(out, Statement{})
	}
	return out
}

// resolveCorrectIndex recovers the correct option position from whatever
// encoding the generator used. Precedence:
//  1. an in-range integer index
//  2. a numeral or letter (A-D) that maps to 0-3
//  3. the literal text of an option, compared after normalization
//  4. index 0
//
// The final fallback silently produces a wrong key when none of the
// strategies match; rejecting the record instead would shrink the set.
func resolveCorrectIndex(rec rawRecord) int {
	if idx, ok := rawToInt(rec.CorrectIndex); ok && idx >= 0 && idx < len(rec.Options) {
		return idx
	}

	for _, field := range []json.RawMessage{rec.CorrectIndex, rec.Answer} {
		s := strings.TrimSpace(rawToString(field))
		if idx, ok := letterOrNumeralIndex(s); ok && idx < len(rec.Options) {
			return idx
		}
	}

	if literal := rawToString(rec.Answer); literal != "" {
		want := match.Normalize(literal)
		for i, opt := range rec.Options {
			if match.Normalize(opt) == want {
				return i
			}
		}
	}

	return 0
}

// letterOrNumeralIndex maps "0".."3" or "A".."D" (case-insensitive) to an
// option index.
func letterOrNumeralIndex(s string) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	c := s[0]
	switch {
	case c >= '0' && c <= '3':
		return int(c - '0'), true
	case c >= 'A' && c <= 'D':
		return int(c - 'A'), true
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	}
	return 0, false
}

// rawToInt extracts an integer from a JSON number or numeric string.
func rawToInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// rawToString extracts a string from a JSON string or number.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
