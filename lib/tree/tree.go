package tree

import (
	"Component_Tree/lib/path"
	"Component_Tree/lib/utils"
	"errors"
	"fmt"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"sync"
)

var (
	ErrNotFound       = errors.New("no such component")
	ErrParentNotFound = errors.New("parent component does not exist")
	ErrAlreadyExists  = errors.New("component already exists")
	ErrNotEmpty       = errors.New("component has subcomponents")
	ErrIsRoot         = errors.New("cannot detach the root component")
)

// Component is a node of the tree. Subcomponents holds the canonical absolute
// paths of the direct children.
type Component struct {
	mutex         sync.RWMutex
	Id            uuid.UUID
	Subcomponents []string
}

// Tree is a registry of components addressed by canonical absolute paths. All
// operations are safe for concurrent use.
type Tree struct {
	items  sync.Map                      // canonical absolute path string => *Component
	parsed *lru.Cache[string, path.Path] // raw lookup string => parsed path
}

const parseCacheSize = 4096

func NewTree() (tree *Tree) {
	tree = new(Tree)
	tree.parsed, _ = lru.New[string, path.Path](parseCacheSize)
	root := &Component{
		Id:            uuid.New(),
		Subcomponents: make([]string, 0),
	}
	tree.items.Store("/", root)
	return
}

// lockAncestors read locks every component strictly above p, then calls f with
// the component at p. The locks are held until f returns. missing is the error
// reported when p itself does not exist, ancestors always report
// ErrParentNotFound.
func (tree *Tree) lockAncestors(p path.Path, missing error, f func(component *Component) error) error {
	segments := p.Segments()
	current := "/"
	for i := 0; ; i++ {
		value, exists := tree.items.Load(current)
		if !exists {
			if i == len(segments) {
				return fmt.Errorf("%w: %q", missing, current)
			}
			return fmt.Errorf("%w: %q", ErrParentNotFound, current)
		}

		component := value.(*Component)
		if i == len(segments) {
			return f(component)
		}

		component.mutex.RLock()
		defer component.mutex.RUnlock()

		if current == "/" {
			current += segments[i]
		} else {
			current += string(path.Separator) + segments[i]
		}
	}
}

func requireAbsolute(p path.Path) error {
	if !p.IsAbsolute() {
		return fmt.Errorf("%w: %q", path.ErrNotAbsolute, p.String())
	}
	return nil
}

// Attach adds a new component at p. The parent component must already exist.
func (tree *Tree) Attach(p path.Path) error {
	if err := requireAbsolute(p); err != nil {
		return err
	}
	if p.IsEmpty() {
		return fmt.Errorf("%w: %q", ErrAlreadyExists, p.String())
	}

	return tree.lockAncestors(p.ParentPath(), ErrParentNotFound, func(parent *Component) error {
		// Write lock parent component
		parent.mutex.Lock()
		defer parent.mutex.Unlock()

		newComponent := &Component{
			Id:            uuid.New(),
			Subcomponents: make([]string, 0),
		}
		if _, exists := tree.items.LoadOrStore(p.String(), newComponent); exists {
			return fmt.Errorf("%w: %q", ErrAlreadyExists, p.String())
		}

		// Insert new component in its parent
		parent.Subcomponents = append(parent.Subcomponents, p.String())

		log.Debug().Str("path", p.String()).Msg("attached component")
		return nil
	})
}

// Detach removes the component at p, which must have no subcomponents.
func (tree *Tree) Detach(p path.Path) error {
	if err := requireAbsolute(p); err != nil {
		return err
	}
	if p.IsEmpty() {
		return ErrIsRoot
	}

	return tree.lockAncestors(p.ParentPath(), ErrParentNotFound, func(parent *Component) error {
		// Write lock parent component
		parent.mutex.Lock()
		defer parent.mutex.Unlock()

		value, exists := tree.items.Load(p.String())
		if !exists {
			return fmt.Errorf("%w: %q", ErrNotFound, p.String())
		}

		component := value.(*Component)
		component.mutex.RLock()
		defer component.mutex.RUnlock()

		if len(component.Subcomponents) != 0 {
			return fmt.Errorf("%w: %q", ErrNotEmpty, p.String())
		}

		tree.items.Delete(p.String())

		// Remove component from its parent
		parent.Subcomponents = utils.Remove(parent.Subcomponents, p.String())

		log.Debug().Str("path", p.String()).Msg("detached component")
		return nil
	})
}

// List returns the canonical paths of the direct subcomponents of p.
func (tree *Tree) List(p path.Path) (paths []string, err error) {
	if err = requireAbsolute(p); err != nil {
		return nil, err
	}

	return paths, tree.lockAncestors(p, ErrNotFound, func(component *Component) error {
		// Read lock component
		component.mutex.RLock()
		defer component.mutex.RUnlock()

		paths = make([]string, len(component.Subcomponents))
		copy(paths, component.Subcomponents)
		return nil
	})
}

// Exists reports whether a component is registered at p.
func (tree *Tree) Exists(p path.Path) bool {
	_, exists := tree.items.Load(p.String())
	return exists
}

// IdOf returns the id of the component at p.
func (tree *Tree) IdOf(p path.Path) (uuid.UUID, error) {
	value, exists := tree.items.Load(p.String())
	if !exists {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrNotFound, p.String())
	}
	return value.(*Component).Id, nil
}

// parse turns a raw lookup string into a Path, memoizing successful parses.
// Only the parse is cached, never an existence answer.
func (tree *Tree) parse(raw string) (path.Path, error) {
	if p, exists := tree.parsed.Get(raw); exists {
		return p, nil
	}
	p, err := path.New(raw)
	if err != nil {
		return path.Path{}, err
	}
	tree.parsed.Add(raw, p)
	return p, nil
}

// Resolve parses raw, makes it absolute against base and checks that a
// component exists there. It returns the canonical absolute path of the
// component.
func (tree *Tree) Resolve(raw string, base path.Path) (path.Path, error) {
	p, err := tree.parse(raw)
	if err != nil {
		return path.Path{}, err
	}

	absolute, err := p.FormAbsolutePath(base)
	if err != nil {
		return path.Path{}, err
	}

	if !tree.Exists(absolute) {
		return path.Path{}, fmt.Errorf("%w: %q", ErrNotFound, absolute.String())
	}
	return absolute, nil
}

// ResolveAll resolves every raw lookup string against base concurrently,
// returning the resolved paths in the same order, or the first error.
func (tree *Tree) ResolveAll(raws []string, base path.Path) ([]path.Path, error) {
	resolved := make([]path.Path, len(raws))

	var group errgroup.Group
	for i, raw := range raws {
		i, raw := i, raw
		group.Go(func() error {
			p, err := tree.Resolve(raw, base)
			if err != nil {
				return err
			}
			resolved[i] = p
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}
