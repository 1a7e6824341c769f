package engine

import (
	"narrate/engine/ast"
)

// Check loads filename and every file it references and resolves each
// select target without playing the story. Problems with targets are
// returned as a list; a file that cannot be loaded at all is an error.
func (eng *Engine) Check(filename string) ([]error, error) {
	root, err := eng.LoadFile(filename)
	if err != nil {
		return nil, err
	}
	files := map[string]*ast.File{filename: root}
	problems := []error{}
	pending := []string{filename}
	for len(pending) > 0 {
		current := pending[0]
		pending = pending[1:]
		file := files[current]
		for _, scene := range allScenes(file) {
			for _, opt := range scene.Select().Options {
				switch t := opt.Target.(type) {
				case ast.SceneReference:
					if t.IsExit() {
						continue
					}
					if _, ok := file.Scene(t); !ok {
						problems = append(problems, &FileError{Filename: current, Err: newResolutionError(t, file)})
					}
				case *ast.FileReference:
					path := eng.resolvePathFrom(current, t.Filename)
					target, seen := files[path]
					if !seen {
						target, err = eng.LoadFile(path)
						if err != nil {
							problems = append(problems, err)
							files[path] = nil
							continue
						}
						files[path] = target
						pending = append(pending, path)
					}
					if target == nil {
						continue
					}
					if _, ok := target.Scene(t.Ref()); !ok {
						problems = append(problems, &FileError{Filename: path, Err: newResolutionError(t.Ref(), target)})
					}
				}
			}
		}
	}
	return problems, nil
}

func allScenes(file *ast.File) []*ast.Scene {
	toret := append([]*ast.Scene{}, file.Scenes...)
	for _, m := range file.Modules {
		toret = append(toret, m.Scenes...)
	}
	return toret
}
