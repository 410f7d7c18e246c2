package rewrite

import (
	"fmt"
	"regexp"
)

const (
	classDeclarationPatternConstant         = `public class (\w+Widget)`
	memberVisibilityPatternConstant         = `\b(?:private|public|protected|internal)\b`
	parameterlessConstructorPatternTemplate = `public\s+%s\s*\(\s*\)\s*`
)

var (
	classDeclarationExpression = regexp.MustCompile(classDeclarationPatternConstant)
	memberVisibilityExpression = regexp.MustCompile(memberVisibilityPatternConstant)
)

// ClassAnchor describes the located widget class declaration and the point
// where synthesized members are spliced into its body.
type ClassAnchor struct {
	ClassName string
	// BodyStart is the index immediately past the class opening brace.
	BodyStart int
	// InsertionIndex is the index of the first member-visibility keyword
	// inside the class body.
	InsertionIndex int
}

// LocateClassName returns the name of the first widget class declared in
// content. The second return value is false when no declaration matches.
func LocateClassName(content string) (string, bool) {
	declarationMatch := classDeclarationExpression.FindStringSubmatch(content)
	if declarationMatch == nil {
		return "", false
	}
	return declarationMatch[1], true
}

// LocateInsertionAnchor finds the named class declaration, its opening brace,
// and the first member-visibility keyword inside the class body. The second
// return value is false when any of the three landmarks is absent, which the
// caller treats as a structural mismatch.
func LocateInsertionAnchor(content string, className string) (ClassAnchor, bool) {
	declarationExpression := regexp.MustCompile(`public class ` + regexp.QuoteMeta(className) + `\b`)
	declarationLocation := declarationExpression.FindStringIndex(content)
	if declarationLocation == nil {
		return ClassAnchor{}, false
	}

	classBlock, blockFound := FindBalancedBlock(content, declarationLocation[1])
	if !blockFound {
		return ClassAnchor{}, false
	}

	bodyStart := classBlock.OpenIndex + 1
	memberLocation := memberVisibilityExpression.FindStringIndex(content[bodyStart:classBlock.CloseIndex])
	if memberLocation == nil {
		return ClassAnchor{}, false
	}

	return ClassAnchor{
		ClassName:      className,
		BodyStart:      bodyStart,
		InsertionIndex: bodyStart + memberLocation[0],
	}, true
}

// ConstructorSpan identifies the no-argument constructor declaration together
// with its extracted body.
type ConstructorSpan struct {
	// Start is the index of the constructor declaration.
	Start int
	// End is the index immediately past the constructor closing brace.
	End int
	// Body is the text between the constructor braces.
	Body string
}

// LocateParameterlessConstructor finds the no-argument constructor of the
// named class and extracts its brace-balanced body. The second return value
// is false when no such constructor exists.
func LocateParameterlessConstructor(content string, className string) (ConstructorSpan, bool) {
	constructorExpression := regexp.MustCompile(fmt.Sprintf(parameterlessConstructorPatternTemplate, regexp.QuoteMeta(className)))
	constructorLocation := constructorExpression.FindStringIndex(content)
	if constructorLocation == nil {
		return ConstructorSpan{}, false
	}

	if constructorLocation[1] >= len(content) || content[constructorLocation[1]] != openingBraceByteConstant {
		return ConstructorSpan{}, false
	}

	constructorBlock, blockFound := FindBalancedBlock(content, constructorLocation[1])
	if !blockFound {
		return ConstructorSpan{}, false
	}

	return ConstructorSpan{
		Start: constructorLocation[0],
		End:   constructorBlock.CloseIndex + 1,
		Body:  constructorBlock.Body(content),
	}, true
}
