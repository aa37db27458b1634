package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"blogspace-client/domain/blog"
	"blogspace-client/infrastructure/config"
	"blogspace-client/infrastructure/di"
	"blogspace-client/infrastructure/gateway"
	"blogspace-client/interfaces/term"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// One reader over stdin, shared with the alerter so confirmation
	// prompts and the command loop never race for buffered input.
	stdin := bufio.NewReader(os.Stdin)
	alerter := term.New(stdin, os.Stdout)
	container, err := di.NewContainer(cfg, alerter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	container.Start(ctx)

	// Hot-reload tuning knobs while running when a config file is in use.
	if path := os.Getenv("BLOGSPACE_CONFIG"); path != "" {
		watcher, err := config.NewWatcher(path, cfg, container.Logger)
		if err != nil {
			container.Logger.Warn("config hot reload unavailable", zap.Error(err))
		} else {
			defer watcher.Stop()
			watcher.OnChange(func(next *config.Config) {
				container.Store.ApplyConfig(next)
				container.Tokens.SetIntervals(next.TokenCheckInterval, next.TokenRefreshWindow)
			})
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nshutting down")
		cancel()
		container.Shutdown()
		os.Exit(0)
	}()

	runLoop(ctx, container, stdin)
	container.Shutdown()
}

func runLoop(ctx context.Context, c *di.Container, in *bufio.Reader) {
	fmt.Println("blogspace client. Type 'help' for commands.")
	for {
		fmt.Print("> ")
		raw, err := in.ReadString('\n')
		if err != nil {
			return
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		args := strings.Fields(line)
		switch args[0] {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "login":
			if len(args) != 3 {
				fmt.Println("usage: login <email> <password>")
				continue
			}
			c.Store.Login(ctx, args[1], args[2])
		case "signup":
			if len(args) != 4 {
				fmt.Println("usage: signup <name> <email> <password>")
				continue
			}
			c.Store.Signup(ctx, args[1], args[2], args[3])
		case "logout":
			c.Store.Logout(ctx)
		case "whoami":
			state := c.Store.Snapshot()
			if state.User == nil {
				fmt.Println("not signed in")
				continue
			}
			fmt.Printf("%s <%s> (%s)\n", state.User.Name, state.User.Email, state.User.Role)
		case "posts":
			c.Store.FetchPosts(ctx, gateway.PostFilters{})
			for _, p := range c.Store.Snapshot().Posts {
				fmt.Printf("%-24s %-40s %s likes=%d views=%d\n", p.ID, p.Title, p.Status, p.Likes, p.Views)
			}
		case "post":
			handlePost(ctx, c, args[1:])
		case "categories":
			c.Store.FetchCategories(ctx)
			for _, cat := range c.Store.Snapshot().Categories {
				fmt.Printf("%-24s %-24s posts=%d\n", cat.ID, cat.Name, cat.PostCount)
			}
		case "category":
			handleCategory(ctx, c, args[1:])
		case "comments":
			if len(args) != 2 {
				fmt.Println("usage: comments <postID>")
				continue
			}
			comments, err := c.Store.FetchComments(ctx, args[1], gateway.CommentQuery{Tree: true})
			if err != nil {
				continue
			}
			printComments(comments, 0)
		case "comment":
			if len(args) < 3 {
				fmt.Println("usage: comment <postID> <text...>")
				continue
			}
			c.Store.CreateComment(ctx, args[1], strings.Join(args[2:], " "), "")
		case "open":
			if len(args) != 2 {
				fmt.Println("usage: open <path>")
				continue
			}
			decision := c.Guard.EvaluatePath(ctx, args[1])
			if decision.Allowed {
				fmt.Printf("ok: %s\n", args[1])
			} else {
				fmt.Printf("redirect: %s\n", decision.RedirectTo)
			}
		default:
			fmt.Printf("unknown command %q, try 'help'\n", args[0])
		}
	}
}

func handlePost(ctx context.Context, c *di.Container, args []string) {
	if len(args) == 0 {
		fmt.Println("usage: post create|delete|like ...")
		return
	}
	switch args[0] {
	case "create":
		if len(args) < 2 {
			fmt.Println("usage: post create <title...>")
			return
		}
		title := strings.Join(args[1:], " ")
		c.Store.CreatePost(ctx, gateway.PostInput{Title: title, Content: title, Status: "draft"})
	case "delete":
		if len(args) != 2 {
			fmt.Println("usage: post delete <id>")
			return
		}
		c.Store.DeletePost(ctx, args[1])
	case "like":
		if len(args) != 2 {
			fmt.Println("usage: post like <id>")
			return
		}
		c.Store.LikePost(ctx, args[1])
	default:
		fmt.Printf("unknown post subcommand %q\n", args[0])
	}
}

func handleCategory(ctx context.Context, c *di.Container, args []string) {
	if len(args) == 0 {
		fmt.Println("usage: category create|delete ...")
		return
	}
	switch args[0] {
	case "create":
		if len(args) < 2 {
			fmt.Println("usage: category create <name...>")
			return
		}
		c.Store.CreateCategory(ctx, gateway.CategoryInput{Name: strings.Join(args[1:], " ")})
	case "delete":
		if len(args) != 2 {
			fmt.Println("usage: category delete <id>")
			return
		}
		c.Store.DeleteCategory(ctx, args[1])
	default:
		fmt.Printf("unknown category subcommand %q\n", args[0])
	}
}

func printComments(comments []blog.Comment, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, cm := range comments {
		fmt.Printf("%s- [%s] %s: %s\n", indent, cm.ID, cm.Author.Name, cm.Content)
		printComments(cm.Replies, depth+1)
	}
}

func printHelp() {
	fmt.Println(`commands:
  login <email> <password>     sign in
  signup <name> <email> <pw>   create an account
  logout                       sign out (asks first)
  whoami                       show the current session
  posts                        list posts
  post create <title...>       create a draft post
  post delete <id>             delete a post (asks first)
  post like <id>               toggle a like
  categories                   list categories
  category create <name...>    create a category
  category delete <id>         delete a category (asks first)
  comments <postID>            list a post's comment tree
  comment <postID> <text...>   add a comment
  open <path>                  check a route through the guard
  quit                         exit`)
}
