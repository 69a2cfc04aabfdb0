package jitlog

import (
	"path/filepath"
	"strings"
	"testing"

	"jitcheck/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_SampleLog(t *testing.T) {
	log, err := ParseFile(filepath.Join("..", "..", "testdata", "hotspot.log"))
	require.NoError(t, err)
	require.Len(t, log.Tasks, 1)

	task := log.Tasks[0]
	assert.Equal(t, "1", task.CompileID)

	require.NotNil(t, task.Member)
	assert.Equal(t, "java.lang.String", task.Member.FullyQualifiedClassName())
	assert.Equal(t, "int indexOf(java.lang.String)", task.Member.UnqualifiedSignature())

	require.Len(t, task.ParseTags, 1)
	parse := task.ParseTags[0]
	assert.Equal(t, models.TagParse, parse.Name())
	assert.Equal(t, "700", parse.Attr(models.AttrMethod))

	// Children arrive in document order: bc, method, call, inline_fail,
	// bc, branch, parse_done.
	children := parse.Children()
	require.Len(t, children, 7)
	assert.Equal(t, models.TagBC, children[0].Name())
	assert.Equal(t, models.TagCall, children[2].Name())
	assert.Equal(t, models.TagBranch, children[5].Name())

	// XML entities in attributes are decoded.
	assert.Equal(t, "executed < MinInliningThreshold times", children[3].Attr(models.AttrReason))
}

func TestParseFile_PopulatesDictionary(t *testing.T) {
	log, err := ParseFile(filepath.Join("..", "..", "testdata", "hotspot.log"))
	require.NoError(t, err)

	dict := log.Tasks[0].Dictionary
	require.NotNil(t, dict.Method("701"))
	assert.Equal(t, "5120", dict.Method("701").Attr(models.AttrIICount))
	require.NotNil(t, dict.Klass("646"))
	assert.Nil(t, dict.Method("404"))
}

func TestParse_FragmentWithoutDocumentWrapper(t *testing.T) {
	input := `<task compile_id='5'>
<klass id='10' name='com/example/A' flags='1'/>
<method id='20' holder='10' name='f' bytes='3' iicount='1'/>
<parse method='20'>
<bc code='182' bci='0'/>
</parse>
</task>`

	log, err := Parse(strings.NewReader(input), "fragment")
	require.NoError(t, err)
	require.Len(t, log.Tasks, 1)
	assert.Equal(t, "5", log.Tasks[0].CompileID)
	require.NotNil(t, log.Tasks[0].Member)
	assert.Equal(t, "com.example.A", log.Tasks[0].Member.FullyQualifiedClassName())
}

func TestParse_NonTaskElementsAreSkipped(t *testing.T) {
	input := `<hotspot_log>
<vm_version><name>test vm</name></vm_version>
<task_queued compile_id='1' stamp='0.1'/>
<tty>free text the VM interleaves</tty>
<task compile_id='1'>
<klass id='10' name='com/example/A' flags='1'/>
<method id='20' holder='10' name='f' bytes='3' iicount='1'/>
<parse method='20'/>
</task>
</hotspot_log>`

	log, err := Parse(strings.NewReader(input), "inline")
	require.NoError(t, err)
	require.Len(t, log.Tasks, 1)
	assert.Equal(t, "1", log.Tasks[0].CompileID)
}

func TestParse_TaskWithoutParsePhaseIsDropped(t *testing.T) {
	input := `<task compile_id='3'>
<phase name='optimize' stamp='0.2'/>
</task>`

	log, err := Parse(strings.NewReader(input), "inline")
	require.NoError(t, err)
	assert.Empty(t, log.Tasks)
}

func TestParse_TruncatedTaskKeepsSalvageablePrefix(t *testing.T) {
	input := `<task compile_id='7'>
<klass id='10' name='com/example/A' flags='1'/>
<method id='20' holder='10' name='f' bytes='3' iicount='2000'/>
<parse method='20'>
<bc code='182' bci='0'/>`

	// The JVM was killed mid-write; whatever parsed stays usable.
	log, _ := Parse(strings.NewReader(input), "truncated")
	require.NotNil(t, log)
	require.Len(t, log.Tasks, 1)
	assert.Equal(t, "7", log.Tasks[0].CompileID)
	require.Len(t, log.Tasks[0].ParseTags, 1)
}

func TestLogParseError_Rendering(t *testing.T) {
	err := NewLogParseError("parsing bytecode offset", nil).
		WithCompileID("42").
		WithDetail("xyz")

	msg := err.Error()
	assert.Contains(t, msg, "parsing bytecode offset")
	assert.Contains(t, msg, "compile_id 42")
	assert.Contains(t, msg, `"xyz"`)
}
