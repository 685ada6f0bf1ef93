package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"trade-helper/internal/config"
	"trade-helper/internal/profit"
	"trade-helper/internal/session"
)

func TestAppRun_RendersOnlyChanges(t *testing.T) {
	a := newTestApp(t, "text")

	input := strings.Join([]string{
		"# price amount [current]",
		"100 1000",
		"100 1000",
		"",
		"oops",
		"0 1000",
		"100 1000 105",
		"reset",
		"100 1000 105",
	}, "\n")

	var out bytes.Buffer
	if err := a.Run(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	text := out.String()
	if got := strings.Count(text, "Break Even: 100.501"); got != 3 {
		t.Errorf("expected 3 rendered summaries, got %d:\n%s", got, text)
	}
	if got := strings.Count(text, "4.48%: $105.000"); got != 2 {
		t.Errorf("expected current price line twice, got %d:\n%s", got, text)
	}
}

func TestAppRun_StopsOnCancel(t *testing.T) {
	a := newTestApp(t, "rows")

	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Run(ctx, reader, io.Discard)
	}()

	if _, err := writer.Write([]byte("100 1000\n")); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cancel()
	_ = writer.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop after cancellation")
	}
}

func TestAppRun_NoWritesAfterCancel(t *testing.T) {
	a := newTestApp(t, "text")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf bytes.Buffer
	out := &cancelAfterWriter{w: &buf, limit: 5, cancel: cancel}

	if err := a.Run(ctx, &endlessQuotes{}, out); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}

	// Run 返回后立即读取，-race 下可发现迟到的写入
	text := buf.String()
	if !strings.Contains(text, "Break Even: ") {
		t.Fatalf("expected rendered output before cancellation, got %q", text)
	}
	if after := buf.String(); after != text {
		t.Errorf("output changed after Run returned")
	}
}

func TestAppOnce(t *testing.T) {
	a := newTestApp(t, "rows")

	var out bytes.Buffer
	if err := a.Once(session.RawInput{Price: "100", Amount: "1000", Current: "105"}, &out); err != nil {
		t.Fatalf("Once returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Break Even Price:") || !strings.Contains(out.String(), "4.48%") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	err := a.Once(session.RawInput{Price: "", Amount: "1000"}, io.Discard)
	if !errors.Is(err, profit.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing price, got %v", err)
	}
}

func TestNew_RejectsBadPresenter(t *testing.T) {
	cfg := testConfig("rows")
	cfg.Present.Variant = "table"
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func newTestApp(t *testing.T, variant string) *App {
	t.Helper()
	a, err := New(testConfig(variant), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return a
}

func testConfig(variant string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Environment: "test"},
		Fee: config.FeeConfig{MakerPercent: 0.25, TakerPercent: 0.4, Side: config.FeeSideMaker},
		Present: config.PresentConfig{
			Variant:     variant,
			Locale:      "en-US",
			PriceDigits: 5,
			NetDigits:   2,
		},
	}
}

// endlessQuotes 不断产出金额递增的输入行。
type endlessQuotes struct {
	n       int
	pending []byte
}

func (r *endlessQuotes) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		r.n++
		r.pending = []byte(fmt.Sprintf("100 %d\n", 1000+r.n))
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// cancelAfterWriter 在写入 limit 次后取消 ctx。
type cancelAfterWriter struct {
	w      io.Writer
	writes int
	limit  int
	cancel context.CancelFunc
}

func (c *cancelAfterWriter) Write(p []byte) (int, error) {
	c.writes++
	if c.writes == c.limit {
		c.cancel()
	}
	return c.w.Write(p)
}
