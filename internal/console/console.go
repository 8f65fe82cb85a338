// Package console implements the interactive menu over the tracker service.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/tracker"
)

var (
	promptColor = color.New(color.FgCyan)
	errColor    = color.New(color.FgRed)
	okColor     = color.New(color.FgGreen)
)

// Console runs the numbered menu loop. Input and output are injected so
// sessions can be scripted in tests.
type Console struct {
	svc *tracker.Service
	in  *bufio.Scanner
	out io.Writer
}

// New creates a console bound to the given service and streams.
func New(svc *tracker.Service, in io.Reader, out io.Writer) *Console {
	return &Console{svc: svc, in: bufio.NewScanner(in), out: out}
}

// Run ensures a user exists, then shows the menu until the user exits or
// input ends.
func (c *Console) Run() error {
	if err := c.ensureUser(); err != nil {
		return err
	}
	for {
		c.printMenu()
		choice, ok := c.prompt("Select an option: ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			c.showUser()
		case "2":
			c.renameUser()
		case "3":
			c.addTopic()
		case "4":
			c.listTopics()
		case "5":
			c.addResource()
		case "6":
			c.addNote()
		case "7":
			c.updateProgress()
		case "8":
			c.showTopicDetails()
		case "0":
			fmt.Fprintln(c.out, "Bye.")
			return nil
		default:
			c.errorf("Unknown option.")
		}
	}
}

// ensureUser creates a user interactively when the store has none.
func (c *Console) ensureUser() error {
	user, err := c.svc.GetUser()
	if err != nil {
		if errors.Is(err, apperr.ErrUnsupported) {
			return fmt.Errorf("console requires the json backend: %w", err)
		}
		return err
	}
	if user != nil {
		return nil
	}
	name, ok := c.promptNonEmpty("No user found. Enter a username: ")
	if !ok {
		return fmt.Errorf("no username provided")
	}
	if _, err := c.svc.CreateUser(name); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	c.okf("User created.")
	return nil
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "=== Personal progress tracker ===")
	fmt.Fprintln(c.out, "1. Show user")
	fmt.Fprintln(c.out, "2. Rename user")
	fmt.Fprintln(c.out, "3. Add topic")
	fmt.Fprintln(c.out, "4. List topics")
	fmt.Fprintln(c.out, "5. Add resource to topic")
	fmt.Fprintln(c.out, "6. Add note to topic")
	fmt.Fprintln(c.out, "7. Update topic progress")
	fmt.Fprintln(c.out, "8. Show topic details")
	fmt.Fprintln(c.out, "0. Exit")
}

func (c *Console) showUser() {
	user, err := c.svc.GetUser()
	if err != nil || user == nil {
		c.errorf("No user available.")
		return
	}
	fmt.Fprintf(c.out, "User: %s\n", user.Username)
	fmt.Fprintf(c.out, "Topics: %d\n", len(user.Topics))
}

func (c *Console) renameUser() {
	name, ok := c.promptNonEmpty("New username: ")
	if !ok {
		return
	}
	if err := c.svc.RenameUser(name); err != nil {
		c.errorf("Rename failed: %v", err)
		return
	}
	c.okf("Username updated.")
}

func (c *Console) addTopic() {
	title, ok := c.promptNonEmpty("Topic title: ")
	if !ok {
		return
	}
	description, ok := c.prompt("Description (may be empty): ")
	if !ok {
		return
	}
	if _, err := c.svc.CreateTopic(title, description); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			c.errorf("That topic already exists.")
		} else {
			c.errorf("Could not add topic: %v", err)
		}
		return
	}
	c.okf("Topic added.")
}

func (c *Console) listTopics() {
	topics, err := c.svc.ListTopics()
	if err != nil {
		c.errorf("Could not list topics: %v", err)
		return
	}
	if len(topics) == 0 {
		fmt.Fprintln(c.out, "No topics yet.")
		return
	}
	for i, t := range topics {
		fmt.Fprintf(c.out, "%d. %s - %s\n", i+1, t.Title, t.Description)
	}
}

// chooseTopic lists existing topics and asks for an exact title. Returns
// "" when there are no topics or input ended.
func (c *Console) chooseTopic() string {
	topics, err := c.svc.ListTopics()
	if err != nil {
		c.errorf("Could not list topics: %v", err)
		return ""
	}
	if len(topics) == 0 {
		fmt.Fprintln(c.out, "No topics yet. Add a topic first.")
		return ""
	}
	fmt.Fprintln(c.out, "Existing topics:")
	for i, t := range topics {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, t.Title)
	}
	title, ok := c.promptNonEmpty("Topic title: ")
	if !ok {
		return ""
	}
	return title
}

func (c *Console) addResource() {
	title := c.chooseTopic()
	if title == "" {
		return
	}
	resType, ok := c.promptNonEmpty("Resource type (link/text): ")
	if !ok {
		return
	}
	content, ok := c.promptNonEmpty("Content (URL or text): ")
	if !ok {
		return
	}
	if _, err := c.svc.AddResource(title, resType, content); err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c.errorf("Topic not found.")
		case errors.Is(err, apperr.ErrValidation):
			c.errorf("%v", err)
		default:
			c.errorf("Could not add resource: %v", err)
		}
		return
	}
	c.okf("Resource added.")
}

func (c *Console) addNote() {
	title := c.chooseTopic()
	if title == "" {
		return
	}
	text, ok := c.promptNonEmpty("Note text: ")
	if !ok {
		return
	}
	if _, err := c.svc.AddNote(title, text); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.errorf("Topic not found.")
		} else {
			c.errorf("Could not add note: %v", err)
		}
		return
	}
	c.okf("Note added.")
}

func (c *Console) updateProgress() {
	title := c.chooseTopic()
	if title == "" {
		return
	}
	percent, ok := c.promptInt("Progress percent (0-100): ", 0, 100)
	if !ok {
		return
	}
	if _, err := c.svc.AddProgress(title, percent); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.errorf("Topic not found.")
		} else {
			c.errorf("Could not update progress: %v", err)
		}
		return
	}
	c.okf("Progress updated.")
}

func (c *Console) showTopicDetails() {
	title := c.chooseTopic()
	if title == "" {
		return
	}
	topic, err := c.svc.GetTopic(title)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.errorf("Topic not found.")
		} else {
			c.errorf("Could not load topic: %v", err)
		}
		return
	}

	fmt.Fprintf(c.out, "Topic: %s\n", topic.Title)
	fmt.Fprintf(c.out, "Description: %s\n", topic.Description)

	fmt.Fprintln(c.out, "\nResources:")
	printItems(c.out, topic.Resources)
	fmt.Fprintln(c.out, "\nNotes:")
	printItems(c.out, topic.Notes)
	fmt.Fprintln(c.out, "\nProgress:")
	printItems(c.out, topic.Progress)
}

func printItems[T fmt.Stringer](out io.Writer, items []T) {
	if len(items) == 0 {
		fmt.Fprintln(out, "- (none)")
		return
	}
	for _, item := range items {
		fmt.Fprintf(out, "- %s\n", item)
	}
}

// prompt prints a label and reads one line. ok is false when input ended.
func (c *Console) prompt(label string) (value string, ok bool) {
	promptColor.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// promptNonEmpty re-prompts until the user enters a non-empty value.
func (c *Console) promptNonEmpty(label string) (string, bool) {
	for {
		value, ok := c.prompt(label)
		if !ok {
			return "", false
		}
		if value != "" {
			return value, true
		}
		c.errorf("Enter a non-empty value.")
	}
}

// promptInt re-prompts until the user enters an integer within [min, max].
func (c *Console) promptInt(label string, min, max int) (int, bool) {
	for {
		raw, ok := c.prompt(label)
		if !ok {
			return 0, false
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.errorf("Enter a whole number.")
			continue
		}
		if value < min || value > max {
			c.errorf("Enter a number between %d and %d.", min, max)
			continue
		}
		return value, true
	}
}

func (c *Console) errorf(format string, args ...any) {
	errColor.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) okf(format string, args ...any) {
	okColor.Fprintf(c.out, format+"\n", args...)
}
