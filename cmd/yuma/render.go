package yuma

import (
	"fmt"
	"io"

	"github.com/arthur-debert/yuma/pkg/backend"
	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/packages"
	"github.com/arthur-debert/yuma/pkg/styles"
)

func renderPlan(w io.Writer, plans []packages.Plan) {
	if len(plans) == 0 {
		fmt.Fprintln(w, styles.Render("Muted", MsgPlanEmpty))
		return
	}

	for i, p := range plans {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, styles.Render("Header", p.Backend.String()))
		if len(p.ToInstall) == 0 && len(p.Prunable) == 0 {
			fmt.Fprintln(w, styles.Render("Muted", MsgPlanUpToDate))
			continue
		}
		for _, name := range p.ToInstall {
			fmt.Fprintln(w, styles.Render("Install", fmt.Sprintf(MsgPlanInstall, name)))
		}
		for _, name := range p.Prunable {
			fmt.Fprintln(w, styles.Render("Remove", fmt.Sprintf(MsgPlanPrune, name)))
		}
	}
}

func renderBackends(w io.Writer, kinds []backend.Kind, def backend.Kind) {
	for _, k := range kinds {
		line := styles.Render("Backend", k.String())
		if k == def {
			line += styles.Render("Muted", MsgBackendDefault)
		}
		fmt.Fprintln(w, line)
	}
}

func renderResolved(w io.Writer, generic, specific string) {
	fmt.Fprintf(w, MsgResolved+"\n", generic, styles.Render("Install", specific))
}

func renderUnresolved(w io.Writer, generic string, err error) {
	fmt.Fprintln(w, styles.Render("Warning", fmt.Sprintf(MsgUnresolved, generic, err)))
}

// FormatError renders an error for the terminal, code first when it has one
func FormatError(err error) string {
	out := styles.Render("Error", MsgErrorPrefix+err.Error())
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		for _, key := range []string{"backend", "package", "callback", "path", "command"} {
			if v, ok := details[key]; ok {
				out += "\n" + styles.Render("ErrorCode", fmt.Sprintf("  %s: %v", key, v))
			}
		}
	}
	return out
}
