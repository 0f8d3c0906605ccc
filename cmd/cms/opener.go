package main

import (
	"context"
	"os/exec"
	"runtime"
)

// platformOpener hands attachment paths to the operating system's default
// application handler. It is the process-level implementation of the
// attachments.Opener collaborator.
type platformOpener struct{}

func newPlatformOpener() *platformOpener {
	return &platformOpener{}
}

func (o *platformOpener) OpenPath(ctx context.Context, path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}

	return cmd.Start()
}
