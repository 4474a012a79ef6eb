package notify

import (
	"log/slog"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// Command runs a user-supplied command when a session ends. The title and
// message are exposed to the command through the BREEZE_TITLE and
// BREEZE_MESSAGE environment variables.
type Command struct {
	start func(cmd *exec.Cmd) error
	Cmd   string
}

func NewCommand(cmd string) *Command {
	return &Command{
		Cmd:   cmd,
		start: startAndReap,
	}
}

// startAndReap starts cmd without waiting for it to exit.
func startAndReap(cmd *exec.Cmd) error {
	err := cmd.Start()
	if err != nil {
		return err
	}

	go func() {
		err := cmd.Wait()
		if err != nil {
			slog.Debug(
				"session command failed",
				slog.String("cmd", cmd.String()),
				slog.Any("error", err),
			)
		}
	}()

	return nil
}

func (c *Command) Notify(title, message string) error {
	if c.Cmd == "" {
		return nil
	}

	args, err := shellquote.Split(c.Cmd)
	if err != nil {
		return ErrCommand.Wrap(err)
	}

	if len(args) == 0 {
		return nil
	}

	//nolint:gosec // the command comes from the user's own config
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = append(
		os.Environ(),
		"BREEZE_TITLE="+title,
		"BREEZE_MESSAGE="+message,
	)

	err = c.start(cmd)
	if err != nil {
		return ErrCommand.Wrap(err)
	}

	return nil
}
