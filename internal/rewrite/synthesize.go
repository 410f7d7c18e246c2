package rewrite

import (
	"fmt"
	"strings"
)

const (
	// InjectedFieldMarker is the first synthesized field declaration. Its
	// presence in a file indicates the migration already ran.
	InjectedFieldMarker = "private readonly ILogger logger;"

	initializationLineIndentConstant = "            "
	initializationLineSeparator      = "\n"

	injectedMembersTemplateConstant = `
        private readonly ILogger logger;
        private readonly IThemeManager themeManager;
        private readonly IConfigurationManager config;

        /// <summary>
        /// DI constructor - preferred for new code
        /// </summary>
        public %[1]s(
            ILogger logger,
            IThemeManager themeManager,
            IConfigurationManager config)
        {
            this.logger = logger ?? throw new ArgumentNullException(nameof(logger));
            this.themeManager = themeManager ?? throw new ArgumentNullException(nameof(themeManager));
            this.config = config ?? throw new ArgumentNullException(nameof(config));
%[2]s        }

        /// <summary>
        /// Parameterless constructor for backward compatibility
        /// </summary>
        public %[1]s()
            : this(Logger.Instance, ThemeManager.Instance, ConfigurationManager.Instance)
        {
        }
`
)

// SynthesizeInjectedMembers produces the text block containing the injected
// field declarations, the explicit dependency constructor with null guards,
// and the delegating no-argument constructor. The initialization lines are
// reproduced verbatim inside the explicit constructor, re-indented to the
// constructor body level. An empty initialization body yields a constructor
// containing only the null guards.
func SynthesizeInjectedMembers(className string, initializationLines []string) string {
	return fmt.Sprintf(injectedMembersTemplateConstant, className, formatInitialization(initializationLines))
}

// SplitInitializationBody turns an extracted constructor body into
// initialization lines, dropping surrounding blank lines and removing the
// common leading indentation so relative nesting survives re-indentation.
func SplitInitializationBody(constructorBody string) []string {
	trimmedBody := strings.Trim(constructorBody, initializationLineSeparator+" \t")
	if len(trimmedBody) == 0 {
		return nil
	}

	rawLines := strings.Split(trimmedBody, initializationLineSeparator)
	commonIndent := commonLeadingIndent(rawLines)

	initializationLines := make([]string, 0, len(rawLines))
	for lineIndex, rawLine := range rawLines {
		trimmedLine := strings.TrimRight(rawLine, " \t\r")
		if lineIndex == 0 {
			initializationLines = append(initializationLines, strings.TrimLeft(trimmedLine, " \t"))
			continue
		}
		initializationLines = append(initializationLines, strings.TrimPrefix(trimmedLine, commonIndent))
	}
	return initializationLines
}

func commonLeadingIndent(lines []string) string {
	commonIndent := ""
	commonIndentKnown := false
	for lineIndex, line := range lines {
		if lineIndex == 0 || len(strings.TrimSpace(line)) == 0 {
			continue
		}
		lineIndent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !commonIndentKnown {
			commonIndent = lineIndent
			commonIndentKnown = true
			continue
		}
		for !strings.HasPrefix(lineIndent, commonIndent) {
			commonIndent = commonIndent[:len(commonIndent)-1]
		}
	}
	return commonIndent
}

func formatInitialization(initializationLines []string) string {
	if len(initializationLines) == 0 {
		return ""
	}

	formattedBuilder := strings.Builder{}
	formattedBuilder.WriteString(initializationLineSeparator)
	for _, initializationLine := range initializationLines {
		if len(initializationLine) > 0 {
			formattedBuilder.WriteString(initializationLineIndentConstant)
			formattedBuilder.WriteString(initializationLine)
		}
		formattedBuilder.WriteString(initializationLineSeparator)
	}
	return formattedBuilder.String()
}
