package app

import (
	"context"
	"slices"
	"strconv"
	"testing"

	"github.com/tomz197/galaxy/internal/content"
	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game"
	"github.com/tomz197/galaxy/internal/input"
)

type fakeRand struct {
	f float64
	n int
}

func (r fakeRand) Float64() float64 { return r.f }
func (r fakeRand) Intn(n int) int   { return r.n % n }

// quietRand never triggers dives or enemy fire.
type quietRand struct{}

func (quietRand) Float64() float64 { return 0.99 }

type fakeBriefer struct {
	briefings []int
	tips      int
}

func (b *fakeBriefer) MissionBriefing(_ context.Context, stage int) string {
	b.briefings = append(b.briefings, stage)
	return "brief " + strconv.Itoa(stage)
}

func (b *fakeBriefer) PilotTip(_ context.Context) string {
	b.tips++
	return "tip " + strconv.Itoa(b.tips)
}

type fixture struct {
	t       *testing.T
	app     *App
	in      *input.State
	briefer *fakeBriefer
	surface *draw.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	lib, err := content.Load()
	if err != nil {
		t.Fatal(err)
	}
	f := &fixture{
		t:       t,
		in:      &input.State{},
		briefer: &fakeBriefer{},
		surface: draw.NewRecorder(480, 640),
	}
	f.app = New(f.in, Options{
		Library:    lib,
		Briefer:    f.briefer,
		Rand:       fakeRand{f: 0.5, n: 7},
		Simulation: game.Options{Rand: quietRand{}, RenderRand: quietRand{}},
		Go:         func(fn func()) { fn() },
	})
	return f
}

// frame runs one frame with the given controls tapped and returns the drawn texts.
func (f *fixture) frame(taps ...input.Control) []string {
	for _, c := range taps {
		f.in.Tap(c)
	}
	f.surface.Reset()
	f.app.Frame(f.surface)
	f.in.EndFrame()
	return f.surface.Texts()
}

func (f *fixture) expectScreen(want Screen) {
	f.t.Helper()
	if got := f.app.Screen(); got != want {
		f.t.Fatalf("expected screen %v, got %v", want, got)
	}
}

func expectText(t *testing.T, texts []string, want string) {
	t.Helper()
	if !slices.Contains(texts, want) {
		t.Fatalf("expected %q among drawn texts %q", want, texts)
	}
}

func TestTitleScreen(t *testing.T) {
	f := newFixture(t)
	f.expectScreen(ScreenStart)

	texts := f.frame()
	expectText(t, texts, "GALAXY")
	expectText(t, texts, "[ENTER] START MISSION")
	if f.app.HighScore() != 20000 {
		t.Fatalf("expected initial high score 20000, got %d", f.app.HighScore())
	}
}

func TestStartMission(t *testing.T) {
	for _, c := range []input.Control{input.Confirm, input.Fire} {
		t.Run(c.String(), func(t *testing.T) {
			f := newFixture(t)
			texts := f.frame(c)

			f.expectScreen(ScreenPlaying)
			sim := f.app.Simulation()
			if sim == nil || sim.Level != 1 || len(sim.Enemies) != 32 {
				t.Fatalf("expected stage 1 mounted with 32 enemies, got %+v", sim)
			}
			if f.app.Score() != 0 {
				t.Fatalf("expected score 0, got %d", f.app.Score())
			}
			expectText(t, texts, "STAGE 1")
			expectText(t, texts, "1UP")
			expectText(t, texts, "SECTOR")
		})
	}
}

func TestHUDGroupsScoreDigits(t *testing.T) {
	f := newFixture(t)
	f.frame(input.Confirm)

	f.app.AddScore(1500)
	texts := f.frame()
	expectText(t, texts, "1,500")
	expectText(t, texts, "20,000")

	f.app.AddScore(23000)
	texts = f.frame()
	n := 0
	for _, s := range texts {
		if s == "24,500" {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("expected 24,500 as score and high score, got %d occurrences in %q", n, texts)
	}
}

func TestBriefingShownDuringIntro(t *testing.T) {
	f := newFixture(t)
	f.frame(input.Confirm)

	texts := f.frame()
	expectText(t, texts, "brief 1")
	if !slices.Equal(f.briefer.briefings, []int{1}) {
		t.Fatalf("expected one briefing lookup for stage 1, got %v", f.briefer.briefings)
	}

	for f.app.Simulation().IntroActive() {
		f.frame()
	}
	if slices.Contains(f.frame(), "brief 1") {
		t.Fatal("briefing should disappear with the intro")
	}
}

func TestNilSurfaceSkipsFrame(t *testing.T) {
	f := newFixture(t)
	f.in.Tap(input.Confirm)
	f.app.Frame(nil)
	f.expectScreen(ScreenStart)
}

func TestPauseAndResume(t *testing.T) {
	f := newFixture(t)
	f.frame(input.Confirm)
	sim := f.app.Simulation()

	texts := f.frame(input.Pause)
	f.expectScreen(ScreenPaused)
	if !sim.Paused {
		t.Fatal("simulation should be paused")
	}
	expectText(t, texts, "PAUSED")

	intro := sim.IntroTimer
	f.frame()
	if sim.IntroTimer != intro {
		t.Fatal("paused simulation must not advance")
	}

	f.frame(input.Pause)
	f.expectScreen(ScreenPlaying)
	if sim.Paused {
		t.Fatal("simulation should be resumed")
	}
}

func TestPausedBackReturnsToTitle(t *testing.T) {
	f := newFixture(t)
	f.frame(input.Confirm)
	f.frame(input.Back)
	f.expectScreen(ScreenPaused)
	f.frame(input.Back)
	f.expectScreen(ScreenStart)
}

func TestScoreAndGameOver(t *testing.T) {
	f := newFixture(t)
	f.frame(input.Confirm)

	f.app.AddScore(400)
	f.app.AddScore(150)
	if f.app.Score() != 550 {
		t.Fatalf("expected 550, got %d", f.app.Score())
	}

	f.app.GameOver(25000, 12)
	f.expectScreen(ScreenGameOver)
	want := Stats{EnemiesKilled: 12, Accuracy: 87, Stage: 1, Score: 25000}
	if f.app.Stats() != want {
		t.Fatalf("expected stats %+v, got %+v", want, f.app.Stats())
	}
	if f.app.HighScore() != 25000 {
		t.Fatalf("high score should rise to 25000, got %d", f.app.HighScore())
	}

	texts := f.frame()
	expectText(t, texts, "GAME OVER")
	expectText(t, texts, "25,000")
	expectText(t, texts, "HIGH SCORE: 25,000")
	expectText(t, texts, "87%")
	expectText(t, texts, "tip 1")

	f.app.GameOver(100, 0)
	if f.app.HighScore() != 25000 {
		t.Fatal("a lower score must not lower the high score")
	}
}

func TestPlayAgainMountsFreshGame(t *testing.T) {
	f := newFixture(t)
	f.frame(input.Confirm)
	first := f.app.Simulation()
	first.Kills = 5
	f.app.AddScore(80)
	f.app.GameOver(80, 5)

	f.frame(input.Confirm)
	f.expectScreen(ScreenPlaying)
	second := f.app.Simulation()
	if second == first || second.Kills != 0 || second.Over {
		t.Fatal("play again should mount a new simulation")
	}
	if f.app.Score() != 0 || f.app.Level() != 1 {
		t.Fatalf("expected score 0 at stage 1, got %d at %d", f.app.Score(), f.app.Level())
	}
}

func TestLevelCompleteMountsNextStage(t *testing.T) {
	f := newFixture(t)
	f.frame(input.Confirm)
	sim := f.app.Simulation()

	f.app.LevelComplete(2)
	if sim.Level != 1 {
		t.Fatal("the next stage must not start inside the callback")
	}

	f.frame()
	if sim.Level != 2 || sim.IntroTimer != 120 || sim.Transitioning {
		t.Fatalf("expected stage 2 intro, got level %d intro %d", sim.Level, sim.IntroTimer)
	}
	if f.app.Simulation() != sim {
		t.Fatal("the same simulation stays mounted across stages")
	}

	texts := f.frame()
	expectText(t, texts, "STAGE 2")
	expectText(t, texts, "brief 2")
}

func TestWinner(t *testing.T) {
	f := newFixture(t)
	f.frame(input.Confirm)
	f.app.AddScore(30000)
	f.app.Win()
	f.expectScreen(ScreenWinner)

	texts := f.frame()
	expectText(t, texts, "WINNER!")
	expectText(t, texts, "30,000")
	if f.app.HighScore() != 30000 {
		t.Fatalf("expected high score 30000, got %d", f.app.HighScore())
	}

	f.frame(input.Confirm)
	f.expectScreen(ScreenStart)
}

func TestScoresScreen(t *testing.T) {
	f := newFixture(t)
	f.frame(input.Scores)
	f.expectScreen(ScreenScores)

	texts := f.frame()
	expectText(t, texts, "HALL OF FAME")
	expectText(t, texts, "AAA")
	expectText(t, texts, "1,000,000")
	expectText(t, texts, "07")

	f.frame(input.Back)
	f.expectScreen(ScreenStart)
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	f.frame(input.Quit)
	if !f.app.Done() {
		t.Fatal("quit should end the app")
	}
}

func TestStaleLookupsDropped(t *testing.T) {
	f := newFixture(t)
	var queued []func()
	f.app.opts.Go = func(fn func()) { queued = append(queued, fn) }

	f.frame(input.Confirm)
	f.app.GameOver(0, 0)
	f.frame(input.Confirm)

	for _, fn := range queued[:2] {
		fn()
	}
	f.frame()
	if f.app.briefing != "" || f.app.tip != "" {
		t.Fatalf("lookups from the previous game must be ignored, got %q / %q", f.app.briefing, f.app.tip)
	}

	queued[2]()
	f.frame()
	if f.app.briefing != "brief 1" {
		t.Fatalf("expected current briefing, got %q", f.app.briefing)
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 10, nil},
		{"short", 10, []string{"short"}},
		{"one two three four", 9, []string{"one two", "three", "four"}},
		{"unbreakableword", 5, []string{"unbreakableword"}},
	}
	for _, c := range cases {
		if got := wrap(c.text, c.width); !slices.Equal(got, c.want) {
			t.Fatalf("wrap(%q, %d) = %q, want %q", c.text, c.width, got, c.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	cases := map[int]string{0: "0", 630: "630", 20000: "20,000", 1000000: "1,000,000"}
	for n, want := range cases {
		if got := formatScore(n); got != want {
			t.Fatalf("formatScore(%d) = %q, want %q", n, got, want)
		}
	}
}
