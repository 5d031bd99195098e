package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shroud/internal/analysis"
	"shroud/internal/core/config"
	"shroud/internal/markup"
	"shroud/internal/model"
)

const pipelineConfig = `
version = 1

[naming]
mode = "letters"

[[rule]]
pattern = "**"
preset = "normal"
`

// mapCodec serves prepared documents and encodes them as a marker carrying
// the final document name.
type mapCodec struct {
	docs map[string]*markup.Document
}

func (c *mapCodec) Decode(name string, _ []byte) (*markup.Document, error) {
	d, ok := c.docs[name]
	if !ok {
		return nil, errors.New("unknown entry")
	}
	return d, nil
}

func (c *mapCodec) Encode(doc *markup.Document) ([]byte, error) {
	return []byte("encoded:" + doc.Name), nil
}

func TestRun_FullPipeline(t *testing.T) {
	cfg, err := config.Parse(pipelineConfig)
	require.NoError(t, err)

	m := model.NewModule("App")
	window := m.AddType("App.Views", "MainWindow")
	title := window.AddProperty("Title", model.RefSig{Namespace: "System", Name: "String"})

	boot := m.AddType("App", "Startup").AddMethod("Boot")
	boot.Body = []*model.Instruction{
		{Op: model.Ldstr, Operand: "/App;component/mainwindow.xaml"},
		{Op: model.Call, Operand: &model.MemberRef{Name: "LoadComponent", ParamCount: 2}},
		{Op: model.Ret},
	}

	pathCell := &markup.Property{Name: "Path", Value: "(App.Views.MainWindow.Title)"}
	doc := &markup.Document{
		Root: &markup.Element{Type: "Window", Props: []*markup.Property{pathCell}},
	}
	opaque := &model.ResourceEntry{Key: "logo.png", Data: []byte{1, 2}}
	m.Resources = []*model.ResourceContainer{{
		Name: "App.g.resources",
		Entries: []*model.ResourceEntry{
			{Key: "mainwindow.baml", Data: []byte{0xFF}},
			opaque,
		},
	}}

	codec := &mapCodec{docs: map[string]*markup.Document{"mainwindow.baml": doc}}
	svc, err := NewService(cfg, codec, analysis.StackTracer{}, nil)
	require.NoError(t, err)

	run, err := svc.Run(context.Background(), m)
	require.NoError(t, err)

	// Symbols matched by the rule are renamed.
	assert.NotEqual(t, "MainWindow", window.Name())
	assert.NotEqual(t, "Title", title.Name())

	// The markup path expression tracks both renames.
	want := "(App.Views." + window.Name() + "." + title.Name() + ")"
	assert.Equal(t, want, pathCell.Value)

	// The document was renamed and the container regenerated around it.
	container := m.Resources[0]
	require.Len(t, container.Entries, 2)
	entry := container.Entries[0]
	assert.NotEqual(t, "mainwindow.baml", entry.Key)
	assert.True(t, strings.HasSuffix(entry.Key, ".baml"), "entry key %q", entry.Key)
	assert.Equal(t, "encoded:"+entry.Key, string(entry.Data))
	assert.Same(t, opaque, container.Find("logo.png"))

	// The code literal follows the document under its own extension.
	base := strings.TrimSuffix(entry.Key, ".baml")
	lit, _ := boot.Body[0].String()
	assert.Equal(t, "/App;component/"+base+".xaml", lit)

	// The run log carries every committed rename.
	renamed := run.Renamed()
	olds := make([]string, 0, len(renamed))
	for _, r := range renamed {
		olds = append(olds, r.OldName)
	}
	assert.Contains(t, olds, "MainWindow")
	assert.Contains(t, olds, "Title")
}

func TestRun_UnreferencedDocumentRoundTrips(t *testing.T) {
	cfg, err := config.Parse(pipelineConfig)
	require.NoError(t, err)

	m := model.NewModule("App")
	boot := m.AddType("App", "Startup").AddMethod("Boot")
	boot.Body = []*model.Instruction{
		{Op: model.Ldstr, Operand: "/App;component/views/main.xaml"},
		{Op: model.Ret},
	}

	doc := &markup.Document{Root: &markup.Element{Type: "Window"}}
	original := []byte{0xAA}
	m.Resources = []*model.ResourceContainer{{
		Name: "App.g.resources",
		Entries: []*model.ResourceEntry{
			// No code literal points at this entry, so it must survive
			// byte-identical under its original key.
			{Key: "views/other.baml", Data: original},
		},
	}}

	codec := &mapCodec{docs: map[string]*markup.Document{"views/other.baml": doc}}
	svc, err := NewService(cfg, codec, analysis.StackTracer{}, nil)
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), m)
	require.NoError(t, err)

	entry := m.Resources[0].Entries[0]
	assert.Equal(t, "views/other.baml", entry.Key)
	assert.Equal(t, original, entry.Data)
	lit, _ := boot.Body[0].String()
	assert.Equal(t, "/App;component/views/main.xaml", lit)
}

func TestRun_Cancelled(t *testing.T) {
	cfg, err := config.Parse(pipelineConfig)
	require.NoError(t, err)

	svc, err := NewService(cfg, nil, analysis.StackTracer{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := model.NewModule("App")
	widget := m.AddType("Ns", "Widget")
	_, err = svc.Run(ctx, m)
	require.Error(t, err)
	assert.Equal(t, "Widget", widget.Name())
}
