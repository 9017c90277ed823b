package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/manufosela/game-board/internal/ctxlog"
	"github.com/manufosela/game-board/internal/domain"
	"github.com/manufosela/game-board/internal/generator"
	"github.com/manufosela/game-board/internal/hclboard"
	"github.com/manufosela/game-board/internal/hint"
	"github.com/manufosela/game-board/internal/markup"
	"github.com/manufosela/game-board/internal/placement"
	"github.com/manufosela/game-board/internal/raster"
)

func newService() *Service {
	return NewService(placement.New(), hint.NewExplainer(), generator.NewRandom(), raster.New(), nil)
}

func logCtx(buf *bytes.Buffer) context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(buf, nil)))
}

const demo = `<game-board grid-cells-x="3" grid-cells-y="3">
	<div data-pos="1,1" data-size="3,1" data-bgcolor="red">top</div>
	<style>div { color: white; }</style>
	<div data-pos="1,1" data-size="12,12">too big</div>
	<div data-size="1,1">no pos</div>
	<div data-pos="3,3" data-size="1,1">corner</div>
</game-board>`

func TestLayoutLogsRejections(t *testing.T) {
	boards, err := markup.ParseString(demo)
	require.NoError(t, err)

	var buf bytes.Buffer
	l, err := newService().Layout(logCtx(&buf), boards[0])
	require.NoError(t, err)

	require.Len(t, l.Results, 4, "style children are not placed")
	var reasons []domain.Reason
	for _, r := range l.Results {
		reasons = append(reasons, r.Reason)
	}
	require.Equal(t, []domain.Reason{domain.Accepted, domain.ExtentOutOfBounds, domain.MissingFields, domain.Accepted}, reasons)

	logs := buf.String()
	require.Equal(t, 2, strings.Count(logs, "child rejected"))
	require.Contains(t, logs, "reason=ExtentOutOfBounds")
	require.Contains(t, logs, "reason=MissingFields")
	require.Contains(t, logs, "at most 3,3 fits")
}

func TestResizeReevaluates(t *testing.T) {
	boards, err := markup.ParseString(demo)
	require.NoError(t, err)
	svc := newService()
	b := boards[0]

	l, err := svc.Resize(context.Background(), b, "12", "12")
	require.NoError(t, err)
	require.True(t, l.Results[1].Accepted(), "12x12 span fits once the grid grows")

	l, err = svc.Resize(context.Background(), b, "2", "0")
	require.NoError(t, err)
	require.Equal(t, domain.GridConfig{Columns: 2, Rows: 12}, l.Config)
	require.Equal(t, domain.ExtentOutOfBounds, l.Results[0].Reason)
	require.Equal(t, domain.OriginOutOfBounds, l.Results[3].Reason)
}

func TestRenderSkipsRejected(t *testing.T) {
	boards, err := markup.ParseString(demo)
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, newService().Render(context.Background(), &out, boards[0]))
	shadowPart := out.String()[:strings.Index(out.String(), "</template>")]
	require.Equal(t, 2, strings.Count(shadowPart, "grid-column-start"))
	require.NotContains(t, shadowPart, "too big")
}

func TestHCLAndHTMLAgree(t *testing.T) {
	boards, err := hclboard.NewLoader().LoadBytes([]byte(`
board "demo" {
  columns = 3
  rows    = 3
  piece "div" {
    pos = "1,1"
    size = "3,1"
    bgcolor = "red"
  }
  style = "div { color: white; }"
  piece "div" {
    pos  = [1, 1]
    size = [12, 12]
  }
  piece "div" { size = "1,1" }
  piece "div" {
    pos  = "3,3"
    size = "1,1"
  }
}`), "demo.hcl")
	require.NoError(t, err)
	htmlBoards, err := markup.ParseString(demo)
	require.NoError(t, err)

	svc := newService()
	fromHCL, err := svc.Layout(context.Background(), boards[0])
	require.NoError(t, err)
	fromHTML, err := svc.Layout(context.Background(), htmlBoards[0])
	require.NoError(t, err)
	if diff := cmp.Diff(fromHTML, fromHCL); diff != "" {
		t.Fatalf("layouts differ (-html +hcl):\n%s", diff)
	}
}

func TestPlaceBareDescriptors(t *testing.T) {
	l, err := newService().Place(context.Background(), domain.GridConfig{Columns: 12, Rows: 12}, []domain.ChildDescriptor{
		{Pos: domain.StringPtr("13,1"), Size: domain.StringPtr("1,1")},
		{Pos: domain.StringPtr("1,1"), Size: domain.StringPtr("12,12")},
	})
	require.NoError(t, err)
	require.Equal(t, domain.OriginOutOfBounds, l.Results[0].Reason)
	require.Equal(t, domain.Placement{ColStart: 1, ColEnd: 13, RowStart: 1, RowEnd: 13}, l.Results[1].Placement)
}

func TestPreviewAndGenerate(t *testing.T) {
	svc := newService()
	b, err := svc.Generate(context.Background(), 7, domain.GridConfig{Columns: 6, Rows: 6}, 5)
	require.NoError(t, err)
	img, err := svc.Preview(context.Background(), b, 60, 60)
	require.NoError(t, err)
	require.Equal(t, 60, img.Bounds().Dx())
}

func TestNotConfigured(t *testing.T) {
	var svc Service
	_, err := svc.Layout(context.Background(), domain.NewBoard("x"))
	require.ErrorIs(t, err, errNotConfigured)
	_, err = svc.List(context.Background())
	require.ErrorIs(t, err, errNotConfigured)
	_, err = svc.Preview(context.Background(), domain.NewBoard("x"), 1, 1)
	require.ErrorIs(t, err, errNotConfigured)
}
