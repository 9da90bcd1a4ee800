package ecs

// Hierarchy links live in Transform: a child stores its parent id and the parent
// lists the child in Children. Every helper here updates both sides together.
// Cycles are not detected.

// SetParent makes parent the parent of child, removing child from its previous
// parent's children first. Both entities must own a Transform.
func (r *Registry) SetParent(child, parent Entity) {
	r.mustAlive(child)
	r.mustAlive(parent)
	if child.Id == parent.Id {
		violation(ErrInvalidParent, "entity %s cannot be its own parent", child)
	}
	r.setParent(child.Id, parent.Id)
}

func (r *Registry) setParent(child, parent EntityId) {
	ct := r.transforms.Get(child)
	pt := r.transforms.Get(parent)

	old := NoEntity
	if ct.HasParent {
		if ct.Parent == parent {
			return
		}
		old = ct.Parent
		if op, ok := r.transforms.TryGet(old); ok {
			op.removeChild(child)
		}
	}

	ct.Parent = parent
	ct.HasParent = true
	ct.MatrixOutdated = true
	pt.Children = append(pt.Children, child)

	Publish(r.events, ParentChanged{Child: child, OldParent: old, NewParent: parent})
}

// ClearParent detaches child from its parent. Entities without a Transform or
// without a parent are left untouched.
func (r *Registry) ClearParent(child Entity) {
	r.mustAlive(child)
	r.clearParent(child.Id)
}

func (r *Registry) clearParent(child EntityId) {
	ct, ok := r.transforms.TryGet(child)
	if !ok || !ct.HasParent {
		return
	}

	old := ct.Parent
	if op, ok := r.transforms.TryGet(old); ok {
		op.removeChild(child)
	}
	ct.Parent = NoEntity
	ct.HasParent = false
	ct.MatrixOutdated = true

	Publish(r.events, ParentChanged{Child: child, OldParent: old, NewParent: NoEntity})
}

// AddChild is SetParent with the arguments in parent-first order
func (r *Registry) AddChild(parent, child Entity) {
	r.SetParent(child, parent)
}

// RemoveChild detaches child if, and only if, its parent is parent
func (r *Registry) RemoveChild(parent, child Entity) {
	r.mustAlive(parent)
	r.mustAlive(child)
	if ct, ok := r.transforms.TryGet(child.Id); ok && ct.HasParent && ct.Parent == parent.Id {
		r.clearParent(child.Id)
	}
}

// detach cuts every hierarchy link of id: its own parent link and the parent
// links of its children. Used when id is destroyed or loses its Transform.
func (r *Registry) detach(id EntityId) {
	t, ok := r.transforms.TryGet(id)
	if !ok {
		return
	}
	if t.HasParent {
		r.clearParent(id)
		t = r.transforms.Get(id)
	}

	children := t.Children
	t.Children = nil
	for _, c := range children {
		ct, ok := r.transforms.TryGet(c)
		if !ok || !ct.HasParent || ct.Parent != id {
			continue
		}
		ct.Parent = NoEntity
		ct.HasParent = false
		ct.MatrixOutdated = true
		Publish(r.events, ParentChanged{Child: c, OldParent: id, NewParent: NoEntity})
	}
}

func (r *Registry) HasParent(e Entity) bool {
	r.mustAlive(e)
	t, ok := r.transforms.TryGet(e.Id)
	return ok && t.HasParent
}

// Parent returns the parent of e, or false if e has none
func (r *Registry) Parent(e Entity) (Entity, bool) {
	r.mustAlive(e)
	t, ok := r.transforms.TryGet(e.Id)
	if !ok || !t.HasParent {
		return Nil, false
	}
	return r.EntityOf(t.Parent), true
}

// Children returns handles to the children of e in link order
func (r *Registry) Children(e Entity) []Entity {
	r.mustAlive(e)
	t, ok := r.transforms.TryGet(e.Id)
	if !ok {
		return nil
	}
	children := make([]Entity, 0, len(t.Children))
	for _, c := range t.Children {
		children = append(children, r.EntityOf(c))
	}
	return children
}

// RebuildHierarchy recomputes every children list from the parent links and
// drops links to parents that are destroyed or have no Transform.
func (r *Registry) RebuildHierarchy() {
	transforms := r.transforms.Components()
	for i := range transforms {
		transforms[i].Children = transforms[i].Children[:0]
	}

	ids := r.transforms.Entities()
	for i := range transforms {
		t := &transforms[i]
		if !t.HasParent {
			continue
		}
		pt, ok := r.transforms.TryGet(t.Parent)
		if !ok || r.IsDestroyed(t.Parent) {
			t.Parent = NoEntity
			t.HasParent = false
			t.MatrixOutdated = true
			continue
		}
		pt.Children = append(pt.Children, ids[i])
	}
	r.logger.Debug().Int("transforms", len(transforms)).Msg("hierarchy rebuilt")
}
