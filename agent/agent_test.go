package agent

import (
	"strings"
	"testing"
	"time"

	"github.com/linanwx/hal9000/terminal"
)

type loggedLine struct {
	text  string
	align terminal.Align
	color string
}

type fakeDisplay struct {
	lines []loggedLine
}

func (d *fakeDisplay) Log(text string, align terminal.Align, color string) {
	d.lines = append(d.lines, loggedLine{text: text, align: align, color: color})
}

func (d *fakeDisplay) take() []loggedLine {
	out := d.lines
	d.lines = nil
	return out
}

func newTestAgent() (*Agent, *fakeDisplay, *int) {
	d := &fakeDisplay{}
	quits := 0
	a := New(d, func() { quits++ }, Config{})
	return a, d, &quits
}

func TestFirstInputAlwaysGreets(t *testing.T) {
	for _, text := range []string{"hello", "Where am I?", "", "/quit"} {
		a, d, _ := newTestAgent()
		if a.Initialized() {
			t.Fatal("agent should start uninitialized")
		}

		a.OnInput(text)

		lines := d.take()
		if len(lines) != 1 || lines[0].text != "Good morning, mortal! This is HAL." {
			t.Fatalf("OnInput(%q) lines = %+v, want the greeting only", text, lines)
		}
		if lines[0].align != terminal.AlignRight || lines[0].color != "#00805A" {
			t.Fatalf("greeting style = %q %q", lines[0].align, lines[0].color)
		}
		if !a.Initialized() {
			t.Fatalf("OnInput(%q) should initialize the agent", text)
		}
	}
}

func TestInputAfterInitialization(t *testing.T) {
	a, d, _ := newTestAgent()
	a.OnInput("wake up")
	d.take()

	a.OnInput("Where am I? Tell me.")
	a.OnInput("where am i?")
	a.OnInput("hello")
	a.OnInput("hello") // initialization never reverts

	lines := d.take()
	want := []string{
		"You are now in the unknown, dummy.",
		"Your input is registered and won't be taken into mind. Keep trying.",
		"Your input is registered and won't be taken into mind. Keep trying.",
		"Your input is registered and won't be taken into mind. Keep trying.",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i].text != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i].text, want[i])
		}
	}
	if !a.Initialized() {
		t.Fatal("agent should stay initialized")
	}
}

func TestRelocate(t *testing.T) {
	for _, place := range []string{"kitchen", "", "the pod bay", "  spaced  "} {
		a, d, quits := newTestAgent()

		a.OnCommand("relocate " + place)

		if a.Location() != place {
			t.Fatalf("Location() = %q, want %q", a.Location(), place)
		}
		lines := d.take()
		if len(lines) != 2 {
			t.Fatalf("relocate %q emitted %+v", place, lines)
		}
		announce := lines[1]
		if announce.align != terminal.AlignCenter || announce.color != "#404040" {
			t.Fatalf("announcement style = %q %q", announce.align, announce.color)
		}
		if announce.text != "— Now in the "+place+". —" {
			t.Fatalf("announcement = %q", announce.text)
		}
		if lines[0].text != "" || lines[0].align != terminal.AlignCenter {
			t.Fatalf("spacer line = %+v", lines[0])
		}
		if *quits != 0 {
			t.Fatal("relocate must not quit")
		}
	}
}

func TestRelocateWithoutSpaceIsUnknown(t *testing.T) {
	a, d, _ := newTestAgent()
	a.OnCommand("relocate")
	a.OnCommand("relocatekitchen")

	if a.Location() != DefaultLocation {
		t.Fatalf("Location() = %q, want %q", a.Location(), DefaultLocation)
	}
	if got := len(d.take()); got != 4 {
		t.Fatalf("got %d lines, want 4 (two unknown commands)", got)
	}
}

func TestQuitSignalsOnceWithoutOutput(t *testing.T) {
	a, d, quits := newTestAgent()
	a.OnCommand("quit")

	if *quits != 1 {
		t.Fatalf("quit signalled %d times, want 1", *quits)
	}
	if lines := d.take(); len(lines) != 0 {
		t.Fatalf("quit emitted %+v", lines)
	}

	// A nil quit func is tolerated.
	New(&fakeDisplay{}, nil, Config{}).OnCommand("quit")
}

func TestUnknownCommandLeavesStateUnchanged(t *testing.T) {
	for _, cmd := range []string{"fly", "", "QUIT", "quit now", " relocate x"} {
		a, d, quits := newTestAgent()
		a.OnCommand("relocate moon")
		d.take()

		a.OnCommand(cmd)

		lines := d.take()
		if len(lines) != 2 {
			t.Fatalf("OnCommand(%q) emitted %d lines, want 2", cmd, len(lines))
		}
		if lines[0].text != "Command `"+cmd+"` unknown." || lines[0].align != terminal.AlignLeft || lines[0].color != "#ff3000" {
			t.Fatalf("error line = %+v", lines[0])
		}
		if lines[1].text != "I'm afraid I can't do that." || lines[1].align != terminal.AlignRight {
			t.Fatalf("refusal line = %+v", lines[1])
		}
		if a.Location() != "moon" || a.Initialized() || *quits != 0 {
			t.Fatalf("state changed: location=%q initialized=%v quits=%d", a.Location(), a.Initialized(), *quits)
		}
	}
}

func TestUpdateIsSilent(t *testing.T) {
	a, d, _ := newTestAgent()
	for i := uint64(1); i <= 3; i++ {
		a.Update(Tick{Seq: i, At: time.Now()})
	}
	if len(d.take()) != 0 || a.Initialized() || a.Location() != DefaultLocation {
		t.Fatal("Update must not change state or emit lines")
	}
}

func TestConfiguredLocationAndStyles(t *testing.T) {
	d := &fakeDisplay{}
	styles := DefaultStyles()
	styles.HAL = Style{Align: terminal.AlignLeft, Color: "2"}
	a := New(d, nil, Config{Location: "Discovery One", Styles: styles})

	a.OnInput("hi")
	a.OnInput("Where am I?")

	lines := d.take()
	if lines[1].text != "You are now in the Discovery One, dummy." || lines[1].align != terminal.AlignLeft || lines[1].color != "2" {
		t.Fatalf("line = %+v", lines[1])
	}
}

func TestScenario(t *testing.T) {
	a, d, quits := newTestAgent()

	a.OnInput("hello")
	if got := d.take(); len(got) != 1 || !strings.Contains(got[0].text, "Good morning") || !a.Initialized() {
		t.Fatalf("step 1: %+v", got)
	}

	a.OnInput("Where am I?")
	if got := d.take(); len(got) != 1 || got[0].text != "You are now in the unknown, dummy." {
		t.Fatalf("step 2: %+v", got)
	}

	a.OnCommand("relocate kitchen")
	if got := d.take(); a.Location() != "kitchen" || !strings.Contains(got[len(got)-1].text, "kitchen") {
		t.Fatalf("step 3: location=%q lines=%+v", a.Location(), got)
	}

	a.OnInput("Where am I?")
	if got := d.take(); len(got) != 1 || got[0].text != "You are now in the kitchen, dummy." {
		t.Fatalf("step 4: %+v", got)
	}

	a.OnCommand("fly")
	if got := d.take(); len(got) != 2 || a.Location() != "kitchen" || !a.Initialized() {
		t.Fatalf("step 5: %+v", got)
	}

	a.OnCommand("quit")
	if *quits != 1 || len(d.take()) != 0 {
		t.Fatalf("step 6: quits=%d", *quits)
	}
}
