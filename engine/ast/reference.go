package ast

import "fmt"

// Target is where a select option leads: a SceneReference or a FileReference.
type Target interface {
	fmt.Stringer
	target()
}

// SceneReference addresses a scene in the currently loaded file. An empty
// Module means a top-level scene.
type SceneReference struct {
	Module string
	Scene  string
}

func (SceneReference) target() {}

func (r SceneReference) Scoped() bool {
	return r.Module != ""
}

// IsExit reports whether r is the bare reserved exit target.
func (r SceneReference) IsExit() bool {
	return !r.Scoped() && r.Scene == ExitID
}

// String renders the scoped id, `module::scene` or `scene`.
func (r SceneReference) String() string {
	if r.Scoped() {
		return r.Module + "::" + r.Scene
	}
	return r.Scene
}

// FileReference addresses a scene in another story file.
type FileReference struct {
	Filename string
	Module   string
	Scene    string
}

func NewFileReference(filename, module, scene string) (*FileReference, error) {
	if filename == "" {
		return nil, structuralf("file reference has an empty filename")
	}
	if scene == "" {
		return nil, structuralf("file reference to %q has no scene", filename)
	}
	return &FileReference{Filename: filename, Module: module, Scene: scene}, nil
}

func (*FileReference) target() {}

// Ref is the reference to resolve once Filename is loaded.
func (r *FileReference) Ref() SceneReference {
	return SceneReference{Module: r.Module, Scene: r.Scene}
}

func (r *FileReference) String() string {
	return fmt.Sprintf("(FileReference %q::%s)", r.Filename, r.Ref())
}
