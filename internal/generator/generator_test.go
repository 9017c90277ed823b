package generator

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/manufosela/game-board/internal/domain"
	"github.com/manufosela/game-board/internal/placement"
)

func TestGeneratedBoardsAreFullyAccepted(t *testing.T) {
	g := NewRandom()
	e := placement.New()
	cases := []struct {
		name string
		cfg  domain.GridConfig
	}{
		{"tiny", domain.GridConfig{Columns: 1, Rows: 1}},
		{"default", domain.NewGridConfig()},
		{"wide", domain.GridConfig{Columns: 30, Rows: 2}},
		{"unnormalized", domain.GridConfig{Columns: 0, Rows: -4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 25; seed++ {
				b, err := g.Generate(context.Background(), seed, tc.cfg, 40)
				if err != nil {
					t.Fatalf("Generate: %v", err)
				}
				if len(b.Children) != 40 {
					t.Fatalf("got %d pieces, want 40", len(b.Children))
				}
				for i, c := range b.Children {
					if res := e.Place(b.Config, c.Descriptor); !res.Accepted() {
						t.Fatalf("seed %d piece %d (%s / %s) rejected: %v", seed, i, *c.Descriptor.Pos, *c.Descriptor.Size, res.Reason)
					}
				}
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := NewRandom()
	a, err := g.Generate(context.Background(), 42, domain.NewGridConfig(), 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Generate(context.Background(), 42, domain.NewGridConfig(), 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Children {
		if diff := cmp.Diff(a.Children[i].Descriptor, b.Children[i].Descriptor); diff != "" {
			t.Fatalf("piece %d differs (-a +b):\n%s", i, diff)
		}
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRandom().Generate(ctx, 1, domain.NewGridConfig(), 3); err == nil {
		t.Fatal("expected cancellation error")
	}
}
