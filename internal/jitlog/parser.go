// Package jitlog reads HotSpot -XX:+LogCompilation output and turns each
// <task> element into an immutable tag tree plus a parse dictionary mapping
// the log's opaque IDs back to method and class metadata.
package jitlog

import (
	"encoding/xml"
	"io"
	"log/slog"
	"os"

	"jitcheck/internal/models"
)

// Task is one compilation of one method: the parse tags of that
// compilation and the dictionary needed to resolve IDs inside them.
type Task struct {
	CompileID string
	// Member is the method this task compiled; nil when the log was too
	// truncated to resolve it.
	Member     *models.CompiledMember
	ParseTags  []*models.Tag
	Dictionary *models.ParseDictionary

	root *models.Tag
}

// CompilationLog holds every task found in a log file, in document order,
// so the last compilation of a member is simply the last task seen for it.
type CompilationLog struct {
	Path  string
	Tasks []*Task
}

// ParseFile reads and parses a LogCompilation file.
func ParseFile(path string) (*CompilationLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse consumes a LogCompilation stream. On a malformed stream it returns
// the tasks parsed so far together with a *LogParseError, so a caller can
// keep working with the salvageable prefix.
func Parse(r io.Reader, path string) (*CompilationLog, error) {
	log := &CompilationLog{Path: path}

	decoder := xml.NewDecoder(r)
	// LogCompilation output is XML-shaped but interleaved with free text
	// from the VM; strict mode would reject real-world logs.
	decoder.Strict = false

	var stack []*models.Tag
	var current *Task

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			perr := NewLogParseError("tokenizing log", err)
			if current != nil {
				// The log ended or broke mid-task (VM still running or
				// killed); keep what the task yielded so far.
				perr = perr.WithCompileID(current.CompileID)
				finishTask(log, current)
			}
			return log, perr
		}

		switch tok := token.(type) {
		case xml.StartElement:
			tag := models.NewTag(tok.Name.Local, attrMap(tok.Attr))

			if current == nil {
				if tok.Name.Local == "hotspot_log" {
					// Document wrapper; descend into it.
					continue
				}
				if tok.Name.Local != models.TagTask {
					// Preamble, vm_version, task_queued etc. live outside
					// any task; skip the whole subtree.
					if err := decoder.Skip(); err != nil && err != io.EOF {
						return log, NewLogParseError("skipping non-task element", err)
					}
					continue
				}
				current = &Task{
					CompileID:  tag.Attr(models.AttrCompileID),
					Dictionary: models.NewParseDictionary(),
					root:       tag,
				}
				stack = append(stack, tag)
				continue
			}

			registerMetadata(current.Dictionary, tag)
			stack[len(stack)-1].AddChild(tag)
			stack = append(stack, tag)

		case xml.EndElement:
			if current == nil || len(stack) == 0 {
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				finishTask(log, current)
				current = nil
			}
		}
	}

	return log, nil
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

// registerMetadata records method, klass and type tags into the task's
// dictionary wherever they appear in the tree.
func registerMetadata(dict *models.ParseDictionary, tag *models.Tag) {
	id := tag.Attr(models.AttrID)
	if id == "" {
		return
	}
	switch tag.Name() {
	case models.TagMethod:
		dict.PutMethod(id, tag)
	case models.TagKlass:
		dict.PutKlass(id, tag)
	case models.TagType:
		dict.PutType(id, tag)
	}
}

func finishTask(log *CompilationLog, task *Task) {
	if task.root == nil {
		return
	}

	task.ParseTags = collectParseTags(task.root)
	if len(task.ParseTags) == 0 {
		slog.Debug("task without parse phase", "compileID", task.CompileID)
		return
	}

	task.Member = task.Dictionary.LookupMember(task.ParseTags[0].Attr(models.AttrMethod))
	log.Tasks = append(log.Tasks, task)
}

// collectParseTags returns the outermost parse tags under root, stopping
// the descent at each one: nested parse scopes belong to the walker, not
// the reader.
func collectParseTags(root *models.Tag) []*models.Tag {
	var out []*models.Tag
	for _, child := range root.Children() {
		if child.Name() == models.TagParse {
			out = append(out, child)
			continue
		}
		out = append(out, collectParseTags(child)...)
	}
	return out
}
