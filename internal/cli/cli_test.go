package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/depsflow/internal/app"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy Path with all flags",
			args: []string{
				"-graph", "/test/graph",
				"--log-level=debug",
				"--log-format=text",
				"--workers=8",
				"--healthcheck-port=8080",
				"--single-threaded",
				"--mode=batch",
				"--frames=24",
				"--watch",
			},
			expectedConfig: &app.Config{
				GraphPath:       "/test/graph",
				LogLevel:        "debug",
				LogFormat:       "text",
				WorkerCount:     8,
				HealthcheckPort: 8080,
				SingleThreaded:  true,
				EvalMode:        "batch",
				Frames:          24,
				Watch:           true,
			},
		},
		{
			name: "Shorthand flag and defaults",
			args: []string{"-g", "/short/path"},
			expectedConfig: &app.Config{
				GraphPath: "/short/path",
				LogLevel:  "info",
				LogFormat: "json",
				EvalMode:  "interactive",
			},
		},
		{
			name: "Positional argument for path",
			args: []string{"/positional/path"},
			expectedConfig: &app.Config{
				GraphPath: "/positional/path",
				LogLevel:  "info",
				LogFormat: "json",
				EvalMode:  "interactive",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
			},
		},
		{
			name:       "No path triggers clean exit with usage",
			args:       []string{},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
			},
		},
		{
			name:      "Invalid log level returns an error",
			args:      []string{"--log-level=foo", "/path"},
			expectErr: true,
		},
		{
			name:      "Invalid log format returns an error",
			args:      []string{"--log-format=yaml", "/path"},
			expectErr: true,
		},
		{
			name:      "Invalid eval mode returns an error",
			args:      []string{"--mode=render", "/path"},
			expectErr: true,
		},
		{
			name:      "Negative frame count returns an error",
			args:      []string{"--frames=-1", "/path"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}

			config, shouldExit, err := Parse(tc.args, out)

			if tc.expectErr {
				require.Error(t, err)
				_, isExitError := err.(*ExitError)
				require.True(t, isExitError, "Expected error to be of type ExitError")
				return
			}
			require.NoError(t, err)

			require.Equal(t, tc.expectExit, shouldExit)

			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, config); diff != "" {
					t.Errorf("Config mismatch (-want +got):\n%s", diff)
				}
			}

			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}
