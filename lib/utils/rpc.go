package utils

import (
	"github.com/google/uuid"
)

type AttachArgs struct {
	Path string
}
type AttachReply struct{}

type DetachArgs struct {
	Path string
}
type DetachReply struct{}

type ListArgs struct {
	Path string
}
type ListReply struct {
	Paths []string
}

type ResolveArgs struct {
	Path string
	Base string
}
type ResolveReply struct {
	Path string
	Id   uuid.UUID
}

type ResolveAllArgs struct {
	Paths []string
	Base  string
}
type ResolveAllReply struct {
	Paths []string
}
