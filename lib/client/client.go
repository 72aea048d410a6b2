package client

import (
	"Component_Tree/lib/utils"
	"github.com/google/uuid"
	"net/rpc"
)

// TreeClient talks to a remote TreeService.
type TreeClient struct {
	client *rpc.Client
}

func New(host string, port int) (*TreeClient, error) {
	endpoint := utils.Endpoint{Host: host, Port: port}
	client, err := rpc.Dial("tcp", endpoint.Address())
	if err != nil {
		return nil, err
	}

	return &TreeClient{client: client}, err
}

func (treeClient *TreeClient) Close() error {
	if treeClient != nil {
		return treeClient.client.Close()
	}
	return nil
}

func (treeClient *TreeClient) Attach(path string) error {
	request := utils.AttachArgs{
		Path: path,
	}
	var reply struct{}
	return treeClient.client.Call("TreeService.AttachRPC", request, &reply)
}

func (treeClient *TreeClient) Detach(path string) error {
	request := utils.DetachArgs{
		Path: path,
	}
	var reply struct{}
	return treeClient.client.Call("TreeService.DetachRPC", request, &reply)
}

func (treeClient *TreeClient) List(path string) ([]string, error) {
	request := utils.ListArgs{
		Path: path,
	}
	var reply utils.ListReply
	err := treeClient.client.Call("TreeService.ListRPC", request, &reply)
	return reply.Paths, err
}

// Resolve returns the canonical absolute path and the id of the component
// addressed by path, resolved against base when path is relative.
func (treeClient *TreeClient) Resolve(path string, base string) (string, uuid.UUID, error) {
	request := utils.ResolveArgs{
		Path: path,
		Base: base,
	}
	var reply utils.ResolveReply
	err := treeClient.client.Call("TreeService.ResolveRPC", request, &reply)
	return reply.Path, reply.Id, err
}

func (treeClient *TreeClient) ResolveAll(paths []string, base string) ([]string, error) {
	request := utils.ResolveAllArgs{
		Paths: paths,
		Base:  base,
	}
	var reply utils.ResolveAllReply
	err := treeClient.client.Call("TreeService.ResolveAllRPC", request, &reply)
	return reply.Paths, err
}
