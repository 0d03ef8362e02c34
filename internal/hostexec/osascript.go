package hostexec

import (
	"fmt"

	"github.com/xdg/appbridge/internal/script"
)

// DefaultLanguage is the scripting language passed to "do script".
const DefaultLanguage = "javascript"

// ErrorMarker starts the line emitted by the host wrapper when the
// application's scripting engine raises. The full line is
// ERROR|<number>|<message>.
const ErrorMarker = "ERROR"

// wrapperTemplate tells the application to run a script file and converts
// any error raised inside it into a marker line on stdout, so the host
// process still exits 0. Errors that happen before the tell block compiles
// (unknown application name) bypass the handler and surface as a non-zero
// osascript exit.
const wrapperTemplate = `try
	tell application %s
		do script (POSIX file %s) language %s
	end tell
on error errMsg number errNum
	return "%s|" & errNum & "|" & errMsg
end try`

// AppleScriptWrapper returns the AppleScript source that runs scriptPath
// inside the application named identity.
func AppleScriptWrapper(identity, scriptPath, language string) string {
	if language == "" {
		language = DefaultLanguage
	}
	return fmt.Sprintf(wrapperTemplate,
		script.AppleScriptString(identity),
		script.AppleScriptString(scriptPath),
		language,
		ErrorMarker,
	)
}

// OSAScript returns a CommandBuilder that drives the application through
// /usr/bin/osascript using the given script language.
func OSAScript(command, language string) CommandBuilder {
	if command == "" {
		command = "osascript"
	}
	return func(identity, scriptPath string) (string, []string) {
		return command, []string{"-e", AppleScriptWrapper(identity, scriptPath, language)}
	}
}
