package topic

import "testing"

func TestTopic_Segments(t *testing.T) {
	tests := []struct {
		topic    Topic
		expected []string
	}{
		{Topic("command.applied"), []string{"command", "applied"}},
		{Topic("single"), []string{"single"}},
		{Topic(""), nil},
	}

	for _, tt := range tests {
		t.Run(tt.topic.String(), func(t *testing.T) {
			got := tt.topic.Segments()
			if len(got) != len(tt.expected) {
				t.Fatalf("Segments() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Segments()[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTopic_IsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		valid bool
	}{
		{"command.applied", true},
		{"file", true},
		{"", false},
		{".command", false},
		{"command.", false},
		{"command..applied", false},
	}

	for _, tt := range tests {
		if got := tt.topic.IsValid(); got != tt.valid {
			t.Errorf("%q.IsValid() = %v, want %v", tt.topic, got, tt.valid)
		}
	}
}

func TestTopic_Matches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"command.applied", "command.applied", true},
		{"command.applied", "command.*", true},
		{"command.applied", "*.applied", true},
		{"command.applied", "**", true},
		{"command.applied", "command.**", true},
		{"command", "command.**", true},
		{"a.b.c", "a.**.c", true},
		{"a.c", "a.**.c", true},
		{"command.applied", "file.*", false},
		{"command.applied", "command", false},
		{"command", "command.*", false},
		{"a.b.c", "a.*", false},
	}

	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestTopic_IsPattern(t *testing.T) {
	if Topic("command.applied").IsPattern() {
		t.Error("plain topic reported as pattern")
	}
	if !Topic("command.*").IsPattern() || !Topic("**").IsPattern() {
		t.Error("wildcard topic not reported as pattern")
	}
	if Join("file", "changed") != "file.changed" {
		t.Error("Join produced wrong topic")
	}
}
