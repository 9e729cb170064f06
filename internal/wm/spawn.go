package wm

import (
	"log/slog"
	"os/exec"
	"syscall"
)

// ExecSpawner runs programs in their own session so they outlive the
// window manager.
type ExecSpawner struct{}

func (ExecSpawner) Spawn(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("Spawned command exited", "argv", argv, "error", err)
		}
	}()

	return nil
}
