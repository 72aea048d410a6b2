package tree

import (
	"Component_Tree/lib/path"
	"Component_Tree/lib/utils"
	"github.com/rs/zerolog/log"
)

type Settings struct {
	Endpoint utils.Endpoint
}

// TreeService exposes a Tree over RPC.
type TreeService struct {
	Settings Settings
	Tree     *Tree
}

func (treeService *TreeService) AttachRPC(request utils.AttachArgs, _ *utils.AttachReply) error {
	p, err := path.New(request.Path)
	if err != nil {
		return err
	}
	return treeService.Tree.Attach(p)
}

func (treeService *TreeService) DetachRPC(request utils.DetachArgs, _ *utils.DetachReply) error {
	p, err := path.New(request.Path)
	if err != nil {
		return err
	}
	return treeService.Tree.Detach(p)
}

func (treeService *TreeService) ListRPC(request utils.ListArgs, reply *utils.ListReply) error {
	p, err := path.New(request.Path)
	if err != nil {
		return err
	}

	paths, err := treeService.Tree.List(p)
	if err != nil {
		return err
	}
	reply.Paths = paths
	return nil
}

func (treeService *TreeService) ResolveRPC(request utils.ResolveArgs, reply *utils.ResolveReply) error {
	base, err := path.New(request.Base)
	if err != nil {
		return err
	}

	resolved, err := treeService.Tree.Resolve(request.Path, base)
	if err != nil {
		log.Debug().Err(err).Str("path", request.Path).Str("base", request.Base).Msg("resolve failed")
		return err
	}

	id, err := treeService.Tree.IdOf(resolved)
	if err != nil {
		// The component was detached between resolution and id lookup
		return err
	}

	reply.Path = resolved.String()
	reply.Id = id
	return nil
}

func (treeService *TreeService) ResolveAllRPC(request utils.ResolveAllArgs, reply *utils.ResolveAllReply) error {
	base, err := path.New(request.Base)
	if err != nil {
		return err
	}

	resolved, err := treeService.Tree.ResolveAll(request.Paths, base)
	if err != nil {
		return err
	}

	paths := make([]string, len(resolved))
	for i, p := range resolved {
		paths[i] = p.String()
	}
	reply.Paths = paths
	return nil
}
