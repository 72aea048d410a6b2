package path

import (
	"errors"
	"fmt"
	"strings"
)

// Separator delimits the levels of a path, example: "/a/b/c"
const Separator = '/'

// Characters that may not appear inside a path segment
const invalidChars = "\\/*+"

var (
	ErrInvalidCharacter = errors.New("invalid character in path segment")
	ErrOutOfRoot        = errors.New("path ascends above root")
	ErrOutOfRange       = errors.New("no segment at this level")
	ErrNotAbsolute      = errors.New("path is not absolute")
)

// Path addresses a node in a named tree, as an ordered list of segments in
// root-to-leaf order plus an absolute flag. A Path is immutable: operations
// that change a path return a new one. The zero value is the empty relative
// path.
//
// Every constructed Path is canonical:
//   - no segment is empty or "."
//   - no segment contains one of '\', '/', '*', '+'
//   - ".." segments only appear as a leading run, and only if the path is
//     relative
type Path struct {
	segments []string
	absolute bool
}

// New parses and normalizes raw into a Path.
func New(raw string) (Path, error) {
	absolute := strings.HasPrefix(raw, string(Separator))
	segments, err := collapse(nil, tokenize(raw), absolute)
	if err != nil {
		return Path{}, err
	}
	return Path{segments: segments, absolute: absolute}, nil
}

// FromSegments builds a Path directly from an already-canonical segment list.
// It does not re-validate characters or resolve relative segments, the caller
// is trusted. Use New for untrusted input.
func FromSegments(segments []string, absolute bool) Path {
	owned := make([]string, len(segments))
	copy(owned, segments)
	return Path{segments: owned, absolute: absolute}
}

// Root returns the root path, whose string form is "/"
func Root() Path {
	return Path{absolute: true}
}

// Normalize returns the canonical form of raw. The canonical form has no
// repeated separators, no trailing separator (except the root path "/"), no
// "." segments, and no ".." segments except as a leading run of a relative
// path. Stepping above the root of an absolute path is an error, example:
// "/../a". Normalize is idempotent.
func Normalize(raw string) (string, error) {
	absolute := strings.HasPrefix(raw, string(Separator))
	segments, err := collapse(nil, tokenize(raw), absolute)
	if err != nil {
		return "", err
	}
	return assemble(segments, absolute), nil
}

// Split cuts raw at its last separator, returning everything before it and
// everything after it. Trailing separators are stripped from the head unless
// the head is the root. Split is purely syntactic: it does not validate
// characters or resolve "." and "..".
//   - "a/b/c/" => ("a/b/c", "")
//   - "/a"     => ("/", "a")
//   - "abc"    => ("", "abc")
func Split(raw string) (head string, tail string) {
	i := strings.LastIndexByte(raw, byte(Separator))
	if i < 0 {
		return "", raw
	}
	tail = raw[i+1:]
	head = strings.TrimRight(raw[:i+1], string(Separator))
	if head == "" {
		// Everything before the tail was separators
		head = string(Separator)
	}
	return head, tail
}

// tokenize splits raw on runs of separators, dropping the empty tokens
// produced by leading, trailing or doubled separators
func tokenize(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == Separator
	})
}

// collapse resolves "." and ".." tokens against an output stack, validating
// every ordinary token on the way. It fails on the first violation found, left
// to right. The initial stack may be non-empty when resolving a relative path
// against the segments of an absolute base.
func collapse(stack []string, tokens []string, absolute bool) ([]string, error) {
	for _, token := range tokens {
		switch token {
		case ".":
			// no-op
		case "..":
			if n := len(stack); n > 0 && stack[n-1] != ".." {
				stack = stack[:n-1]
			} else if absolute {
				return nil, fmt.Errorf("%w: %q", ErrOutOfRoot, strings.Join(tokens, string(Separator)))
			} else {
				stack = append(stack, "..")
			}
		default:
			if i := strings.IndexAny(token, invalidChars); i >= 0 {
				return nil, fmt.Errorf("%w: %q in %q", ErrInvalidCharacter, token[i], token)
			}
			stack = append(stack, token)
		}
	}
	return stack, nil
}

// assemble is the inverse of tokenize for canonical segment lists
func assemble(segments []string, absolute bool) string {
	joined := strings.Join(segments, string(Separator))
	if absolute {
		return string(Separator) + joined
	}
	return joined
}

// String returns the canonical string form, example: "/a/b/c". The root path
// is "/" and the empty relative path is "".
func (path Path) String() string {
	return assemble(path.segments, path.absolute)
}

func (path Path) IsAbsolute() bool {
	return path.absolute
}

// Segments returns a copy of the segment list in root-to-leaf order
func (path Path) Segments() []string {
	segments := make([]string, len(path.segments))
	copy(segments, path.segments)
	return segments
}

// NumLevels returns the number of segments
func (path Path) NumLevels() int {
	return len(path.segments)
}

// IsEmpty reports whether the path has no segments, i.e. it is the root path
// or the empty relative path
func (path Path) IsEmpty() bool {
	return len(path.segments) == 0
}

func (path Path) Equals(other Path) bool {
	return path.String() == other.String()
}

// ComponentName returns the name of the addressed node, which is the last
// segment, or "" for the root or empty path
func (path Path) ComponentName() string {
	if len(path.segments) == 0 {
		return ""
	}
	return path.segments[len(path.segments)-1]
}

// SubcomponentNameAtLevel returns the segment at the given level, 0 being the
// level just under the root
func (path Path) SubcomponentNameAtLevel(index int) (string, error) {
	if index < 0 || index >= len(path.segments) {
		return "", fmt.Errorf("%w: level %d of %q", ErrOutOfRange, index, path.String())
	}
	return path.segments[index], nil
}

// ParentPath returns the path with the last segment removed. The parent of the
// root path or of the empty path is the path itself.
func (path Path) ParentPath() Path {
	if len(path.segments) == 0 {
		return path
	}
	return Path{
		segments: path.segments[:len(path.segments)-1],
		absolute: path.absolute,
	}
}

// FormAbsolutePath resolves the path against an absolute base. If the path is
// already absolute it is returned unchanged, otherwise its segments are
// appended to the base's and any leading ".." run is resolved against the
// base's trailing segments. Ascending above the root is an error, as in
// Normalize.
func (path Path) FormAbsolutePath(base Path) (Path, error) {
	if path.absolute {
		return path, nil
	}
	if !base.absolute {
		return Path{}, fmt.Errorf("%w: base %q", ErrNotAbsolute, base.String())
	}
	stack := make([]string, len(base.segments), len(base.segments)+len(path.segments))
	copy(stack, base.segments)
	segments, err := collapse(stack, path.segments, true)
	if err != nil {
		return Path{}, err
	}
	return Path{segments: segments, absolute: true}, nil
}

// FormRelativePath returns the relative path leading from other to this path.
// Both paths must be absolute. If the paths are equal the result is the empty
// relative path.
func (path Path) FormRelativePath(other Path) (Path, error) {
	if !path.absolute {
		return Path{}, fmt.Errorf("%w: %q", ErrNotAbsolute, path.String())
	}
	if !other.absolute {
		return Path{}, fmt.Errorf("%w: %q", ErrNotAbsolute, other.String())
	}

	// Longest common leading run of segments
	k := 0
	for k < len(path.segments) && k < len(other.segments) && path.segments[k] == other.segments[k] {
		k++
	}

	segments := make([]string, 0, len(other.segments)-k+len(path.segments)-k)
	for i := k; i < len(other.segments); i++ {
		segments = append(segments, "..")
	}
	segments = append(segments, path.segments[k:]...)
	return Path{segments: segments, absolute: false}, nil
}
