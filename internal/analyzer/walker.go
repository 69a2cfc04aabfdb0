package analyzer

import (
	"strconv"

	"jitcheck/internal/analyzer/detectors"
	"jitcheck/internal/jitlog"
	"jitcheck/internal/models"
)

// Walker scans one compilation's parse tree and collects suggestions into
// its sink. The tree interleaves "set context" events (method and bytecode
// markers) with the events they gate (branches, inlining failures), so the
// scan threads a current method ID and bytecode offset through each list of
// siblings. A nested parse tag is an inlined callee's own compilation scope
// and gets a fresh context frame with the callee resolved as the new caller.
//
// One walker serves one compiled member; create a new one per member.
type Walker struct {
	dictionary *models.ParseDictionary
	detectors  map[string]detectors.Detector
	sink       *models.SuggestionList
}

func NewWalker(dictionary *models.ParseDictionary, dets []detectors.Detector) *Walker {
	byTag := make(map[string]detectors.Detector, len(dets))
	for _, det := range dets {
		byTag[det.TagName()] = det
	}
	return &Walker{
		dictionary: dictionary,
		detectors:  byTag,
		sink:       models.NewSuggestionList(),
	}
}

// Suggestions returns the sink in first-seen order.
func (w *Walker) Suggestions() *models.SuggestionList {
	return w.sink
}

// Walk processes one parse tag tree on behalf of the given caller. The only
// error it can return is a *jitlog.LogParseError for a malformed bytecode
// offset; everything else recovers locally.
func (w *Walker) Walk(parseTag *models.Tag, caller *models.CompiledMember) error {
	return w.processParseTag(parseTag, caller)
}

func (w *Walker) processParseTag(parseTag *models.Tag, caller *models.CompiledMember) error {
	methodID := ""
	currentBytecode := detectors.UnknownBytecodeOffset

	for _, child := range parseTag.Children() {
		attrs := child.Attrs()

		switch child.Name() {
		case models.TagMethod:
			methodID = attrs[models.AttrID]

		case models.TagBC:
			// Offsets gate the attribution of every later event in this
			// scope, so a broken one poisons the whole member.
			bci := attrs[models.AttrBCI]
			offset, err := strconv.Atoi(bci)
			if err != nil {
				return jitlog.NewLogParseError("parsing bytecode offset", err).WithDetail(bci)
			}
			currentBytecode = offset

		case models.TagBranch:
			w.dispatch(child, caller, methodID, currentBytecode)

		case models.TagCall:
			// The next inlining decision concerns this callee.
			methodID = attrs[models.AttrMethod]

		case models.TagInlineFail:
			w.dispatch(child, caller, methodID, currentBytecode)

		case models.TagParse:
			// An inlined callee's compilation scope. Rebind the caller and
			// recurse with fresh context; an unresolvable callee still gets
			// walked, attributing downstream suggestions to a nil caller.
			nestedCaller := w.dictionary.LookupMember(attrs[models.AttrMethod])
			if err := w.processParseTag(child, nestedCaller); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *Walker) dispatch(child *models.Tag, caller *models.CompiledMember, methodID string, bytecode int) {
	det := w.detectors[child.Name()]
	if det == nil {
		return
	}

	ctx := &detectors.ScanContext{
		Caller:         caller,
		MethodID:       methodID,
		BytecodeOffset: bytecode,
		Dictionary:     w.dictionary,
	}

	for _, suggestion := range det.Detect(ctx, child.Attrs()) {
		w.sink.Add(suggestion)
	}
}
