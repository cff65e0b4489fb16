package stamp

// SpecSource resolves a template name to its coordinate spec. The catalog
// implements it; tests use an in-package map.
type SpecSource interface {
	CoordinateSpec(templateName string) (CoordinateSpec, error)
}

// Binder maps a context against a template's coordinate spec, producing
// per-page instruction lists for the renderer.
type Binder struct {
	specs SpecSource
}

func NewBinder(specs SpecSource) *Binder {
	return &Binder{specs: specs}
}

// Bind resolves the spec for templateName and binds ctx against it. The
// returned map is keyed by 0-indexed page slot (catalog pages are
// 1-indexed). Per page, static fields appear in catalog declaration order,
// then the items list, then the final total. Context keys the catalog does
// not mention, and catalog fields the context does not populate, are both
// skipped silently.
func (b *Binder) Bind(templateName string, ctx Context) (map[int][]Instruction, error) {
	spec, err := b.specs.CoordinateSpec(templateName)
	if err != nil {
		return nil, err
	}

	byPage := make(map[int][]Instruction)
	for _, f := range spec.StaticFields {
		text, ok := ctx.Lookup(f.Name)
		if !ok {
			continue
		}
		page := pageSlot(f.Page)
		byPage[page] = append(byPage[page], StaticText{
			Text:  text,
			X:     f.X,
			Y:     f.Y,
			Align: f.Align,
		})
	}

	if s := spec.ItemsSection; s != nil {
		if rows := ctx.Items(); len(rows) > 0 {
			page := pageSlot(s.Page)
			byPage[page] = append(byPage[page],
				ItemsList{Rows: rows, Section: *s},
				FinalTotal{Value: ctx.Total(), Section: *s},
			)
		}
	}

	return byPage, nil
}

// pageSlot converts a 1-indexed catalog page to a 0-indexed slot. A
// missing page number in the catalog means page 1.
func pageSlot(page int) int {
	if page < 1 {
		page = 1
	}
	return page - 1
}
