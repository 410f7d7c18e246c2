package rewrite

import (
	"errors"
	"strings"
)

const (
	classNotFoundMessageConstant       = "widget class declaration not found"
	constructorNotFoundMessageConstant = "parameterless constructor not found"
	anchorNotFoundMessageConstant      = "member insertion anchor not found"

	synthesizedBlockSuffixConstant = "\n        "
)

// Sentinel errors reported for structural mismatches in the source text.
var (
	ErrClassNotFound       = errors.New(classNotFoundMessageConstant)
	ErrConstructorNotFound = errors.New(constructorNotFoundMessageConstant)
	ErrAnchorNotFound      = errors.New(anchorNotFoundMessageConstant)
)

// TransformResult captures the in-memory outcome of migrating one source file.
type TransformResult struct {
	ClassName    string
	Content      string
	Changed      bool
	Replacements []ReplacementCount
}

// Transformer rewrites widget source content from singleton accessor usage to
// constructor injection. The zero value is not usable; construct instances
// with NewTransformer.
type Transformer struct {
	replacementRules []ReplacementRule
}

// NewTransformer constructs a Transformer using the default replacement rules.
func NewTransformer() *Transformer {
	return &Transformer{replacementRules: DefaultReplacementRules()}
}

// HasInjectedFields reports whether content already carries the injected
// field marker, in which case the migration must not run again.
func HasInjectedFields(content string) bool {
	return strings.Contains(content, InjectedFieldMarker)
}

// Apply performs the full textual migration over content:
//
//  1. locate the no-argument constructor and extract its balanced body,
//  2. remove the constructor from the content,
//  3. rewrite singleton accessors in the remainder and in the extracted body
//     as two disjoint regions,
//  4. synthesize the injected members block (whose delegating constructor
//     intentionally keeps the original accessor expressions),
//  5. splice the block into the class body before the first member.
//
// Rewriting runs before the splice, so the synthesized delegating constructor
// arguments are never rewritten. Apply never mutates files; callers persist
// the returned content.
func (transformer *Transformer) Apply(content string, className string) (TransformResult, error) {
	constructorSpan, constructorFound := LocateParameterlessConstructor(content, className)
	if !constructorFound {
		return TransformResult{}, ErrConstructorNotFound
	}

	remainder := content[:constructorSpan.Start] + content[constructorSpan.End:]

	rewrittenRemainder, remainderCounts := RewriteReferences(remainder, transformer.replacementRules)
	rewrittenBody, bodyCounts := RewriteReferences(constructorSpan.Body, transformer.replacementRules)
	replacementCounts := MergeReplacementCounts(remainderCounts, bodyCounts)

	insertionAnchor, anchorFound := LocateInsertionAnchor(rewrittenRemainder, className)
	if !anchorFound {
		return TransformResult{}, ErrAnchorNotFound
	}

	synthesizedBlock := SynthesizeInjectedMembers(className, SplitInitializationBody(rewrittenBody))
	migratedContent := rewrittenRemainder[:insertionAnchor.BodyStart] +
		synthesizedBlock +
		synthesizedBlockSuffixConstant +
		rewrittenRemainder[insertionAnchor.InsertionIndex:]

	return TransformResult{
		ClassName:    className,
		Content:      migratedContent,
		Changed:      migratedContent != content,
		Replacements: replacementCounts,
	}, nil
}
