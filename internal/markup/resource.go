// # internal/markup/resource.go
package markup

import (
	"context"
	"path"
	"sort"
	"strings"
	"time"

	"shroud/internal/core/errors"
	"shroud/internal/diag"
	"shroud/internal/model"
	"shroud/internal/shared/observability"
)

// DiscoverDocuments decodes every markup entry of the module's resource
// containers into structured documents and registers the name/path
// expressions found inside them. Entries that fail to decode stay opaque.
func (a *Analyzer) DiscoverDocuments(ctx context.Context, m *model.Module) error {
	start := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("resources").Observe(time.Since(start).Seconds())
	}()

	byName, ok := a.docs[m]
	if !ok {
		byName = make(map[string]*Document)
		a.docs[m] = byName
	}

	for _, c := range m.Resources {
		if !IsMarkupContainer(c.Name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, e := range c.Entries {
			if !IsMarkupEntry(e.Key) {
				continue
			}
			doc, err := a.codec.Decode(e.Key, e.Data)
			if err != nil {
				a.sink.Warn(diag.CategoryMarkupDecode, "cannot decode markup entry",
					"container", c.Name, "error", err.Error())
				continue
			}
			doc.OriginalKey = e.Key
			doc.EncodedName = e.Key
			doc.Name = DecodePath(e.Key)
			byName[strings.ToLower(doc.Name)] = doc
			a.registerDocumentPaths(doc)
		}
	}
	return nil
}

// Documents returns the decoded documents of a module, sorted by name.
func (a *Analyzer) Documents(m *model.Module) []*Document {
	byName := a.docs[m]
	out := make([]*Document, 0, len(byName))
	for _, d := range byName {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RenameDocuments runs the two-phase rename over every document of the
// module that has registered name references. For each document two
// candidate file names are computed, one per name form, reusing the
// existing directory prefix; the rename commits only if every reference
// accepts at least one candidate, and then rewrites all of them and both
// stored names together. A refused candidate leaves everything untouched.
func (a *Analyzer) RenameDocuments(ctx context.Context, m *model.Module, mode model.RenameMode) error {
	for _, doc := range a.Documents(m) {
		if err := ctx.Err(); err != nil {
			return err
		}
		nameRefs := a.NameReferences(m, doc.Name)
		if len(nameRefs) == 0 {
			continue
		}

		oldDec, oldEnc := doc.Name, doc.EncodedName
		base := strings.ToLower(a.auth.FreshName(mode))
		decCand := rebase(oldDec, base)
		// The stored key must stay a valid encoded form, so the fresh base
		// passes through the path escaper.
		encCand := rebase(oldEnc, EncodePath(base))

		accepted := true
		for _, r := range nameRefs {
			if !r.Accept(oldDec, decCand) && !r.Accept(oldEnc, encCand) {
				accepted = false
				break
			}
		}
		if !accepted {
			observability.RenamesRejected.Inc()
			continue
		}

		for _, r := range nameRefs {
			if !r.Apply(oldDec, decCand) {
				r.Apply(oldEnc, encCand)
			}
		}
		delete(a.docs[m], strings.ToLower(oldDec))
		doc.Name = decCand
		doc.EncodedName = encCand
		doc.Dirty = true
		a.docs[m][strings.ToLower(decCand)] = doc
		observability.RenamesCommitted.Inc()
	}
	return nil
}

// rebase swaps the file's base name for a fresh one, keeping the directory
// prefix and the original extension.
func rebase(p, base string) string {
	dir := path.Dir(p)
	ext := path.Ext(p)
	if dir == "." {
		return base + ext
	}
	return dir + "/" + base + ext
}

// RegenerateContainers rebuilds every markup resource container of the
// module: documents touched by a rewrite are re-serialized under their
// final name, everything else is carried over verbatim. The replacement
// entry list is computed in full before the container is touched.
func (a *Analyzer) RegenerateContainers(m *model.Module) error {
	byKey := make(map[string]*Document)
	for _, d := range a.docs[m] {
		byKey[d.OriginalKey] = d
	}

	for _, c := range m.Resources {
		if !IsMarkupContainer(c.Name) {
			continue
		}
		entries := make([]*model.ResourceEntry, 0, len(c.Entries))
		changed := false
		for _, e := range c.Entries {
			doc, ok := byKey[e.Key]
			if !ok || !doc.Dirty {
				entries = append(entries, e)
				continue
			}
			data, err := a.codec.Encode(doc)
			if err != nil {
				return errors.AddContext(
					errors.Wrap(err, errors.CodeInternal, "cannot encode markup document"),
					errors.CtxResource, c.Name)
			}
			entries = append(entries, &model.ResourceEntry{Key: doc.EncodedName, Data: data})
			changed = true
			observability.DocumentsRewritten.Inc()
		}
		if changed {
			c.Entries = entries
		}
	}
	return nil
}
