package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/starford/wunjo/internal/testutil"
	"github.com/starford/wunjo/internal/tracker"
)

func init() {
	color.NoColor = true
}

// runScript feeds input lines to a console over a fresh JSON store and
// returns the service and captured output.
func runScript(t *testing.T, existingUser string, lines ...string) (*tracker.Service, string) {
	t.Helper()
	store, _ := testutil.TestJSONStore(t)
	svc := tracker.NewService(store, store)
	if existingUser != "" {
		if _, err := svc.CreateUser(existingUser); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	c := New(svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v\noutput:\n%s", err, out.String())
	}
	return svc, out.String()
}

func TestFirstRunCreatesUser(t *testing.T) {
	svc, out := runScript(t, "", "alice", "0")
	user, err := svc.GetUser()
	if err != nil || user == nil {
		t.Fatalf("user = %v, err = %v", user, err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q", user.Username)
	}
	if !strings.Contains(out, "Bye.") {
		t.Errorf("missing exit line:\n%s", out)
	}
}

func TestShowUser(t *testing.T) {
	_, out := runScript(t, "alice", "1", "0")
	if !strings.Contains(out, "User: alice") {
		t.Errorf("missing user line:\n%s", out)
	}
	if !strings.Contains(out, "Topics: 0") {
		t.Errorf("missing topic count:\n%s", out)
	}
}

func TestAddTopicAndList(t *testing.T) {
	svc, out := runScript(t, "alice", "3", "Go", "Basics", "4", "0")
	if !strings.Contains(out, "Topic added.") {
		t.Errorf("missing confirmation:\n%s", out)
	}
	if !strings.Contains(out, "1. Go - Basics") {
		t.Errorf("missing listing:\n%s", out)
	}
	if _, err := svc.GetTopic("Go"); err != nil {
		t.Errorf("topic not stored: %v", err)
	}
}

func TestAddDuplicateTopic(t *testing.T) {
	_, out := runScript(t, "alice", "3", "Go", "", "3", "GO", "", "0")
	if !strings.Contains(out, "That topic already exists.") {
		t.Errorf("missing duplicate message:\n%s", out)
	}
}

func TestUnknownOption(t *testing.T) {
	_, out := runScript(t, "alice", "9", "0")
	if !strings.Contains(out, "Unknown option.") {
		t.Errorf("missing error:\n%s", out)
	}
}

func TestRenameUser(t *testing.T) {
	svc, _ := runScript(t, "alice", "2", "bob", "0")
	user, _ := svc.GetUser()
	if user.Username != "bob" {
		t.Errorf("username = %q, want bob", user.Username)
	}
}

func TestProgressRepromptsUntilValid(t *testing.T) {
	// 7 selects update-progress, then topic title, then two invalid values
	// before an accepted one.
	svc, out := runScript(t, "alice", "3", "Go", "", "7", "Go", "abc", "150", "50", "0")
	if !strings.Contains(out, "Enter a whole number.") {
		t.Errorf("missing integer re-prompt:\n%s", out)
	}
	if !strings.Contains(out, "Enter a number between 0 and 100.") {
		t.Errorf("missing range re-prompt:\n%s", out)
	}
	topic, err := svc.GetTopic("Go")
	if err != nil {
		t.Fatal(err)
	}
	if len(topic.Progress) != 1 || topic.Progress[0].Percent != 50 {
		t.Errorf("progress = %+v", topic.Progress)
	}
}

func TestAddResourceRejectsBadURL(t *testing.T) {
	_, out := runScript(t, "alice",
		"3", "Go", "",
		"5", "Go", "link", "not a url",
		"0")
	if !strings.Contains(out, "not a valid URL") {
		t.Errorf("missing URL rejection:\n%s", out)
	}
}

func TestShowTopicDetails(t *testing.T) {
	_, out := runScript(t, "alice",
		"3", "Go", "Basics",
		"6", "Go", "remember this",
		"8", "Go",
		"0")
	if !strings.Contains(out, "Topic: Go") || !strings.Contains(out, "Description: Basics") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "remember this") {
		t.Errorf("missing note:\n%s", out)
	}
	// Resources were never added.
	if !strings.Contains(out, "- (none)") {
		t.Errorf("missing empty marker:\n%s", out)
	}
}

func TestNoTopicsYetShortCircuits(t *testing.T) {
	_, out := runScript(t, "alice", "6", "0")
	if !strings.Contains(out, "No topics yet. Add a topic first.") {
		t.Errorf("missing guard message:\n%s", out)
	}
}
