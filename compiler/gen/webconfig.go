package gen

import (
	"bytes"
	"encoding/xml"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/lithammer/dedent"

	"github.com/syssam/ewl/compiler/load"
)

// WebConfigName is the file name of a web project configuration.
const WebConfigName = "web.config"

var webConfigTemplate = template.Must(template.New(WebConfigName).
	Funcs(template.FuncMap{"xml": xmlEscape}).
	Parse(strings.TrimLeft(dedent.Dedent(`
		<?xml version="1.0" encoding="utf-8"?>
		<!-- {{ xml .Header }} -->
		<configuration>
		  <appSettings>
		    <add key="SystemShortName" value="{{ xml .System }}" />
		    <add key="WebProjectName" value="{{ xml .Project.Name }}" />
		    <add key="Namespace" value="{{ xml .Project.Namespace }}" />
		  </appSettings>
		  <system.webServer>
		    <handlers>
		      <add name="httpplatformhandler" path="*" verb="*" modules="httpPlatformHandler" resourceType="Unspecified" />
		    </handlers>
		    <httpPlatform processPath="{{ xml .Executable }}" arguments="-port %HTTP_PLATFORM_PORT%" stdoutLogEnabled="true" stdoutLogFile=".\logs\stdout" startupTimeLimit="60" />
		  </system.webServer>
		</configuration>
	`), "\n")))

func xmlEscape(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// writeWebConfig regenerates the configuration of a web project.
func (g *Generator) writeWebConfig(p *load.WebProject, dir string) error {
	path := filepath.Join(dir, WebConfigName)
	var buf bytes.Buffer
	err := webConfigTemplate.Execute(&buf, map[string]any{
		"Header":     strings.ReplaceAll(g.config.Header, "--", "-"),
		"System":     g.config.Installation.SystemShortName,
		"Project":    p,
		"Executable": `.\` + filepath.Base(filepath.FromSlash(p.Path)) + ".exe",
	})
	if err != nil {
		return NewGenerationError("web config", path, p.Name, err)
	}
	return replaceFile("web config", path, buf.Bytes())
}
