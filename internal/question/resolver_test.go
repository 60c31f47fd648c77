package question

import (
	"errors"
	"testing"
)

func TestResolveParsesDirectJSON(t *testing.T) {
	raw := `[{"id":"q1","type":"multiple_choice","prompt":"2+2?","options":["3","4","5","6"],"correct_index":1}]`

	qs, err := Resolve(raw)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	q := qs[0]
	if q.ID != "q1" || q.Kind != KindMultipleChoice || q.CorrectIndex != 1 {
		t.Errorf("unexpected question: %+v", q)
	}
}

func TestResolveStripsCodeFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n[{\"id\":\"q1\",\"type\":\"sa\",\"prompt\":\"p\",\"expected\":\"4\"}]\n```"},
		{"bare fence", "```\n[{\"id\":\"q1\",\"type\":\"sa\",\"prompt\":\"p\",\"expected\":\"4\"}]\n```"},
		{"surrounding prose", "Here are your questions:\n[{\"id\":\"q1\",\"type\":\"sa\",\"prompt\":\"p\",\"expected\":\"4\"}]\nLet me know if you need more."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := Resolve(tt.raw)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if len(qs) != 1 || qs[0].Expected != "4" {
				t.Errorf("got %+v", qs)
			}
		})
	}
}

func TestResolveMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"prose only", "I could not generate questions."},
		{"truncated array", `[{"id":"q1","type":"sa"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.raw)
			if !errors.Is(err, ErrMalformedContent) {
				t.Errorf("Resolve(%q) error = %v, want ErrMalformedContent", tt.raw, err)
			}
		})
	}
}

func TestResolveCorrectIndexPrecedence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{
			"in-range integer",
			`[{"type":"mc","prompt":"p","options":["a","b","c","d"],"correct_index":2}]`,
			2,
		},
		{
			"numeric string",
			`[{"type":"mc","prompt":"p","options":["a","b","c","d"],"correct_index":"3"}]`,
			3,
		},
		{
			"letter answer",
			`[{"type":"mc","prompt":"p","options":["a","b","c","d"],"answer":"C"}]`,
			2,
		},
		{
			"lowercase letter",
			`[{"type":"mc","prompt":"p","options":["a","b","c","d"],"answer":"b"}]`,
			1,
		},
		{
			"literal option text",
			`[{"type":"mc","prompt":"p","options":["x = 1","x = 2","x = 3","x = 4"],"answer":"X=3"}]`,
			2,
		},
		{
			"out of range index falls back",
			`[{"type":"mc","prompt":"p","options":["a","b","c","d"],"correct_index":9}]`,
			0,
		},
		{
			"nothing usable defaults to zero",
			`[{"type":"mc","prompt":"p","options":["a","b","c","d"],"answer":"none of these"}]`,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := Resolve(tt.raw)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if qs[0].CorrectIndex != tt.want {
				t.Errorf("CorrectIndex = %d, want %d", qs[0].CorrectIndex, tt.want)
			}
		})
	}
}

func TestResolveStatementPadding(t *testing.T) {
	raw := `[{"type":"tf","prompt":"p","statements":[
		{"text":"one","is_true":true},
		{"text":"two","is_correct":false}
	]}]`

	qs, err := Resolve(raw)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	sts := qs[0].Statements
	if len(sts) != ClusterSize {
		t.Fatalf("got %d statements, want %d", len(sts), ClusterSize)
	}
	if !sts[0].IsTrue || sts[0].Text != "one" {
		t.Errorf("statement 0 = %+v", sts[0])
	}
	if sts[1].IsTrue {
		t.Errorf("is_correct alias not honored: %+v", sts[1])
	}
	for i := 2; i < ClusterSize; i++ {
		if sts[i].Text != "" || sts[i].IsTrue {
			t.Errorf("padding statement %d = %+v, want blank false", i, sts[i])
		}
	}
}

func TestResolveStatementTruncation(t *testing.T) {
	raw := `[{"type":"tf","prompt":"p","statements":[
		{"text":"a","is_true":true},{"text":"b","is_true":true},{"text":"c","is_true":true},
		{"text":"d","is_true":true},{"text":"e","is_true":true},{"text":"f","is_true":true}
	]}]`

	qs, err := Resolve(raw)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(qs[0].Statements) != ClusterSize {
		t.Errorf("got %d statements, want %d", len(qs[0].Statements), ClusterSize)
	}
}

func TestResolveDefaults(t *testing.T) {
	raw := `[{"type":"sa","question":"legacy prompt field","answer":42}]`

	qs, err := Resolve(raw)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	q := qs[0]
	if q.ID == "" {
		t.Error("missing id should be generated")
	}
	if q.Prompt != "legacy prompt field" {
		t.Errorf("Prompt = %q, want fallback to question field", q.Prompt)
	}
	if q.Expected != "42" {
		t.Errorf("Expected = %q, want numeric answer coerced to string", q.Expected)
	}
	if q.Level != LevelRecognition {
		t.Errorf("Level = %q, want default recognition", q.Level)
	}
}

func TestResolveKindAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  Kind
	}{
		{"multiple_choice", KindMultipleChoice},
		{"MC", KindMultipleChoice},
		{"true_false", KindTrueFalse},
		{"TrueFalse", KindTrueFalse},
		{"short_answer", KindShortAnswer},
		{"sa", KindShortAnswer},
		{"unknown", KindMultipleChoice},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			raw := `[{"type":"` + tt.alias + `","prompt":"p"}]`
			qs, err := Resolve(raw)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if qs[0].Kind != tt.want {
				t.Errorf("Kind = %q, want %q", qs[0].Kind, tt.want)
			}
		})
	}
}

func TestApplyResetsRevealed(t *testing.T) {
	a := NewAnswer("q1")
	a.Revealed = true

	Apply(&a, ChoiceValue(2))

	if a.Choice != 2 {
		t.Errorf("Choice = %d, want 2", a.Choice)
	}
	if a.Revealed {
		t.Error("Apply should reset Revealed")
	}
}
