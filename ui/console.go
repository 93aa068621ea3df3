package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"ai-chat-client/chat"
	"ai-chat-client/utils"
)

// Console is the line-oriented front-end. It only drives the orchestrator
// and renders the read-contract views; all state lives in the stores.
type Console struct {
	orch   *chat.Orchestrator
	logger *utils.Logger
	in     io.Reader
	out    io.Writer
}

// NewConsole creates a console bound to the given streams
func NewConsole(orch *chat.Orchestrator, logger *utils.Logger, in io.Reader, out io.Writer) *Console {
	return &Console{orch: orch, logger: logger, in: in, out: out}
}

// Run reads commands until EOF or /quit. Plain input is sent as a chat
// message; the loop waits for the simulated reply before re-rendering.
func (c *Console) Run(ctx context.Context) error {
	c.logger.Info("Console session started")
	c.printHelp()
	c.renderCurrent()

	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := c.handleCommand(ctx, line); quit {
				return nil
			}
			continue
		}

		if _, err := c.orch.SendMessage(ctx, line); err != nil {
			fmt.Fprintln(c.out, errorStyle.Render(err.Error()))
			continue
		}
		c.orch.Wait()
		c.renderCurrent()
	}
}

func (c *Console) handleCommand(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/q":
		return true

	case "/help":
		c.printHelp()

	case "/new":
		conv := c.orch.NewChat()
		fmt.Fprintln(c.out, dimStyle.Render("Started "+conv.Title))

	case "/list":
		conversations := c.orch.Conversations()
		currentID := ""
		if current := c.orch.CurrentConversation(); current != nil {
			currentID = current.ID
		}
		for _, item := range ConversationList(conversations, currentID) {
			title := item.Title
			if item.Active {
				title = activeStyle.Render("* " + title)
			} else {
				title = "  " + title
			}
			fmt.Fprintf(c.out, "%s  %s\n", title, dimStyle.Render(item.ID))
		}

	case "/open":
		if len(args) < 1 {
			fmt.Fprintln(c.out, errorStyle.Render("usage: /open <chat-id>"))
			break
		}
		c.orch.SelectChat(args[0])
		c.renderCurrent()

	case "/delete":
		if len(args) < 1 {
			fmt.Fprintln(c.out, errorStyle.Render("usage: /delete <chat-id>"))
			break
		}
		c.orch.DeleteChat(args[0])

	case "/rename":
		if len(args) < 2 {
			fmt.Fprintln(c.out, errorStyle.Render("usage: /rename <chat-id> <title>"))
			break
		}
		if err := c.orch.RenameChat(args[0], strings.Join(args[1:], " ")); err != nil {
			fmt.Fprintln(c.out, errorStyle.Render(err.Error()))
		}

	case "/model":
		if len(args) < 1 {
			fmt.Fprintln(c.out, errorStyle.Render("usage: /model <model-id>"))
			break
		}
		if conv := c.orch.CurrentConversation(); conv != nil {
			c.orch.SetModel(conv.ID, args[0])
		}

	case "/search":
		query := strings.Join(args, " ")
		for _, conv := range c.orch.Search(query) {
			fmt.Fprintf(c.out, "  %s  %s\n", conv.Title, dimStyle.Render(conv.ID))
		}

	case "/bots":
		current := c.orch.CurrentBot()
		for _, bot := range c.orch.Bots() {
			view := BotViewOf(bot)
			marker := "  "
			if bot.ID == current.ID {
				marker = activeStyle.Render("* ")
			}
			fmt.Fprintf(c.out, "%s[%s] %s - %s (%d files)  %s\n",
				marker, view.Avatar, titleStyle.Render(view.Name), view.Description, view.FileCount, dimStyle.Render(view.ID))
		}

	case "/bot":
		if len(args) < 1 {
			fmt.Fprintln(c.out, errorStyle.Render("usage: /bot <bot-id>"))
			break
		}
		if _, err := c.orch.SwitchBot(args[0]); err != nil {
			fmt.Fprintln(c.out, errorStyle.Render(err.Error()))
			break
		}
		c.renderCurrent()

	case "/newbot":
		if len(args) < 1 {
			fmt.Fprintln(c.out, errorStyle.Render("usage: /newbot <name> [instructions...]"))
			break
		}
		bot, err := c.orch.CreateBot(args[0], "R", "", strings.Join(args[1:], " "), c.orch.CurrentBot().DefaultModel)
		if err != nil {
			fmt.Fprintln(c.out, errorStyle.Render(err.Error()))
			break
		}
		fmt.Fprintln(c.out, dimStyle.Render("Created bot "+bot.Name))

	case "/upload":
		if len(args) < 1 {
			fmt.Fprintln(c.out, errorStyle.Render("usage: /upload <path> [path...]"))
			break
		}
		records := c.orch.UploadFiles(ctx, args)
		c.orch.Wait()
		fmt.Fprintf(c.out, "%s\n", dimStyle.Render(fmt.Sprintf("%d file(s) uploaded", len(records))))

	case "/files":
		bot := c.orch.CurrentBot()
		for _, view := range FileViews(c.orch.BotFiles(bot)) {
			fmt.Fprintf(c.out, "  %s (%s)  %s\n", view.Name, view.Size, dimStyle.Render(view.ID))
		}

	case "/detach":
		if len(args) < 1 {
			fmt.Fprintln(c.out, errorStyle.Render("usage: /detach <file-id>"))
			break
		}
		if err := c.orch.RemoveBotFile(args[0]); err != nil {
			fmt.Fprintln(c.out, errorStyle.Render(err.Error()))
		}

	case "/export":
		path, err := c.orch.Export(".")
		if err != nil {
			fmt.Fprintln(c.out, errorStyle.Render(err.Error()))
			break
		}
		fmt.Fprintln(c.out, dimStyle.Render("Exported to "+path))

	case "/clear":
		c.orch.ClearConversations()
		fmt.Fprintln(c.out, dimStyle.Render("All conversations cleared"))

	default:
		fmt.Fprintln(c.out, errorStyle.Render("unknown command "+cmd))
	}

	return false
}

func (c *Console) renderCurrent() {
	bot := c.orch.CurrentBot()
	conv := c.orch.CurrentConversation()

	header := fmt.Sprintf("[%s] %s", bot.Avatar, bot.Name)
	if conv != nil {
		header += " - " + conv.Title
	}
	fmt.Fprintln(c.out, titleStyle.Render(header))

	for _, view := range MessageViews(conv) {
		fmt.Fprintln(c.out, renderMessage(view))
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, dimStyle.Render(
		"commands: /new /list /open /delete /rename /model /search /bots /bot /newbot /upload /files /detach /export /clear /quit - anything else is sent as a message"))
}
