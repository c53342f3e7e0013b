package args

import (
	"context"
	"errors"
	"testing"
)

func TestExtract_DedupeAndOrder(t *testing.T) {
	got := Extract("cmd {{arg$2:B}} {{arg$1:A}} {{arg$1:A2}}")
	if len(got) != 2 {
		t.Fatalf("placeholders: %+v", got)
	}
	if got[0] != (Placeholder{ID: 1, Label: "A"}) {
		t.Fatalf("first label must win and order by id: %+v", got[0])
	}
	if got[1] != (Placeholder{ID: 2, Label: "B"}) {
		t.Fatalf("got %+v", got[1])
	}
}

func TestExtract_GrammarIsStrict(t *testing.T) {
	for _, cmd := range []string{
		"echo hi",
		"echo {{arg$x:Name}}",
		"echo {{arg1:Name}}",
		"echo {arg$1:Name}",
		"echo {{arg$1 Name}}",
	} {
		if got := Extract(cmd); got != nil {
			t.Errorf("Extract(%q) = %+v, want none", cmd, got)
		}
		if HasPlaceholders(cmd) {
			t.Errorf("HasPlaceholders(%q) = true", cmd)
		}
	}

	if got := Extract("echo {{arg$1:}}"); len(got) != 1 || got[0].Label != "" {
		t.Fatalf("empty labels are legal: %+v", got)
	}
}

func TestResolve_SubstitutesEveryOccurrence(t *testing.T) {
	var prompts []Placeholder
	got, err := Resolve(context.Background(), "git tag {{arg$1:Version}} && git push origin {{arg$1:Version}}",
		nil,
		func(ph Placeholder, previous string) (string, error) {
			prompts = append(prompts, ph)
			return "v1.0", nil
		})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "git tag v1.0 && git push origin v1.0" {
		t.Fatalf("resolved = %q", got)
	}
	if len(prompts) != 1 {
		t.Fatalf("duplicate ids must prompt once: %+v", prompts)
	}
}

func TestResolve_PromptOrderAndPrevious(t *testing.T) {
	var seen []string
	_, err := Resolve(context.Background(), "x {{arg$3:C}} {{arg$1:A}} {{arg$2:B}}",
		map[int]string{2: "prior"},
		func(ph Placeholder, previous string) (string, error) {
			seen = append(seen, ph.Describe()+"/"+previous)
			return "", nil
		})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []string{"1: A/", "2: B/prior", "3: C/"}
	if len(seen) != len(want) {
		t.Fatalf("prompts: %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("prompt %d = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestResolve_EmptyValueIsLegal(t *testing.T) {
	got, err := Resolve(context.Background(), "echo [{{arg$1:X}}]", nil,
		func(ph Placeholder, previous string) (string, error) { return "", nil })
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "echo []" {
		t.Fatalf("resolved = %q", got)
	}
}

func TestResolve_CancelAborts(t *testing.T) {
	calls := 0
	_, err := Resolve(context.Background(), "x {{arg$1:A}} {{arg$2:B}}", nil,
		func(ph Placeholder, previous string) (string, error) {
			calls++
			if ph.ID == 2 {
				return "", ErrCanceled
			}
			return "v", nil
		})
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("err = %v", err)
	}
	if calls != 2 {
		t.Fatalf("prompting should stop at the canceled step, calls=%d", calls)
	}
}

func TestResolve_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Resolve(ctx, "x {{arg$1:A}}", nil,
		func(ph Placeholder, previous string) (string, error) {
			t.Fatalf("prompt must not run after cancellation")
			return "", nil
		})
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestResolve_NoPlaceholders(t *testing.T) {
	got, err := Resolve(context.Background(), "ls -la", nil,
		func(ph Placeholder, previous string) (string, error) {
			t.Fatalf("no prompts expected")
			return "", nil
		})
	if err != nil || got != "ls -la" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestDescribe(t *testing.T) {
	if got := (Placeholder{ID: 3, Label: "Host"}).Describe(); got != "3: Host" {
		t.Fatalf("got %q", got)
	}
	if got := (Placeholder{ID: 3}).Describe(); got != "3" {
		t.Fatalf("got %q", got)
	}
}
