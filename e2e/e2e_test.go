//go:build e2e

package e2e_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	modlockBinary string
	server        *httptest.Server
)

const projectPage = `<!DOCTYPE html>
<html><body><aside>
  <h3 class="e-sidebar-subheader">Minecraft 1.19</h3>
  <ul class="cf-recentfiles">
    <li><abbr data-epoch="1650000000"></abbr><a href="/minecraft/mc-mods/jei/files/3000001">old</a></li>
  </ul>
  <h3 class="e-sidebar-subheader">Minecraft 1.20</h3>
  <ul class="cf-recentfiles">
    <li><abbr data-epoch="1690000000"></abbr><a href="/minecraft/mc-mods/jei/files/4000001">a</a></li>
    <li><abbr data-epoch="1695000000"></abbr><a href="/minecraft/mc-mods/jei/files/4000002">b</a></li>
  </ul>
</aside></body></html>
`

// newServer serves direct files on its own address. Requests for www.curseforge.com arrive
// through HTTP_PROXY and get the project page or a redirect back to a direct file.
func newServer() *httptest.Server {
	files := map[string]string{
		"/files/a.jar":        "alpha\n",
		"/files/b.jar":        "beta\n",
		"/files/jei-1.20.jar": "jei\n",
	}

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Host == "www.curseforge.com" {
			switch r.URL.Path {
			case "/minecraft/mc-mods/jei":
				_, _ = fmt.Fprint(w, projectPage)
			case "/minecraft/mc-mods/jei/download/4000002/file":
				http.Redirect(w, r, srv.URL+"/files/jei-1.20.jar", http.StatusFound)
			default:
				http.NotFound(w, r)
			}
			return
		}

		switch r.URL.Path {
		case "/files/short.jar":
			w.Header().Set("Content-Length", "100")
			_, _ = fmt.Fprint(w, "0123456789")
			return
		}

		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, body)
	}))
	return srv
}

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "modlock-e2e-*")
	if err != nil {
		panic(err)
	}

	modlockBinary = filepath.Join(tmpDir, "modlock")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", modlockBinary, "./cmd/modlock")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build modlock binary: " + err.Error())
	}

	server = newServer()

	exitCode := m.Run()

	server.Close()
	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"expand": expandFiles,
		},
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")
	env.Setenv("SERVER", server.URL)

	binDir := filepath.Dir(modlockBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}

// expandFiles replaces $VAR references in each named file with the script's environment.
func expandFiles(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! expand")
	}
	if len(args) == 0 {
		ts.Fatalf("usage: expand file...")
	}
	for _, name := range args {
		data := ts.ReadFile(name)
		ts.Check(os.WriteFile(ts.MkAbs(name), []byte(os.Expand(data, ts.Getenv)), 0o600))
	}
}
