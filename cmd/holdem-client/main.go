package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-table/internal/client"
	"github.com/lox/holdem-table/internal/protocol"
)

var CLI struct {
	URL      string `default:"http://127.0.0.1:9001" help:"Server URL to connect to"`
	Name     string `short:"n" help:"Player name shown at the table"`
	LogLevel string `short:"l" default:"warn" help:"Log level"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("holdem-client"),
		kong.Description("Play at a Hold'em table from the terminal. Commands: bet N, call, check, fold, quit."))
	ctx.FatalIfErrorf(run())
}

func run() error {
	level, err := log.ParseLevel(CLI.LogLevel)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.NewClient(CLI.URL, logger)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	if err := c.Join(CLI.Name); err != nil {
		return fmt.Errorf("join: %w", err)
	}

	var quitting atomic.Bool
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for msg := range c.Messages() {
			printMessage(c, msg)
		}
		if quitting.Load() {
			return nil
		}
		return errors.New("connection closed by server")
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				quitting.Store(true)
				return c.Close()
			case line, ok := <-lines:
				if !ok {
					quitting.Store(true)
					return c.Close()
				}
				if strings.TrimSpace(line) == "" {
					continue
				}
				cmd, err := client.ParseCommand(line)
				if err != nil {
					fmt.Println(client.ErrorStyle.Render(err.Error()))
					continue
				}
				if cmd.Action == client.ActionQuit {
					quitting.Store(true)
					return c.Close()
				}
				if err := c.Do(cmd); err != nil {
					return err
				}
			}
		}
	})
	return g.Wait()
}

func printMessage(c *client.Client, msg *protocol.Message) {
	switch msg.Type {
	case protocol.MessageTypeWelcome:
		var w protocol.WelcomeData
		if err := msg.Decode(&w); err == nil {
			fmt.Println(client.SuccessStyle.Render(fmt.Sprintf("Seated as %s in seat %d", w.Name, w.SeatID)))
		}
	case protocol.MessageTypeGameState:
		var gs protocol.GameStateData
		if err := msg.Decode(&gs); err == nil {
			fmt.Println(client.RenderState(gs, c.Seat()))
		}
	case protocol.MessageTypeError:
		var e protocol.ErrorData
		if err := msg.Decode(&e); err == nil {
			fmt.Println(client.RenderError(e))
		}
	}
}
