// Command fogchess plays Fog of War chess in the terminal: locally against
// another player at the same keyboard, or against a running server with
// -server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mgrz/fog-chess-server/internal/apiclient"
	"github.com/mgrz/fog-chess-server/internal/fow"
	"github.com/mgrz/fog-chess-server/internal/msgcat"
	"github.com/mgrz/fog-chess-server/internal/notation"
	"github.com/mgrz/fog-chess-server/internal/presenter"
)

func main() {
	serverURL := flag.String("server", "", "play against a fogchess server at this base URL instead of locally")
	messagesFile := flag.String("messages", os.Getenv("MESSAGES_FILE"), "optional message catalog override file")
	flag.Parse()

	catalog, err := msgcat.New(*messagesFile)
	if err != nil {
		log.Fatalf("message catalog: %v", err)
	}
	format := presenter.NewFormatter(catalog)

	in := bufio.NewScanner(os.Stdin)
	if *serverURL != "" {
		runRemote(in, format, *serverURL)
		return
	}
	runLocal(in, format)
}

func runLocal(in *bufio.Scanner, format *presenter.Formatter) {
	game := fow.NewGame()
	fmt.Println(format.QuitHint())

	for !game.Outcome().Decided() {
		fmt.Println(format.Board(game.Render(fow.Perspective(game.Turn()))))
		fmt.Print(format.TurnPrompt(game.Turn()))

		line, ok := readLine(in)
		if !ok {
			return
		}
		from, to, err := notation.ParseMove(line)
		if err != nil {
			fmt.Println(format.BadInput())
			continue
		}
		if err := game.ApplyMove(from, to); err != nil {
			fmt.Println(format.MoveRejected(err))
		}
	}

	fmt.Println(format.Board(game.Render(fow.PerspectiveAudience)))
	fmt.Println(format.GameOver(game.Outcome()))
}

func runRemote(in *bufio.Scanner, format *presenter.Formatter, serverURL string) {
	ctx := context.Background()
	client := apiclient.NewClient(serverURL)

	gameID, err := client.CreateGame(ctx)
	if err != nil {
		log.Fatalf("create game: %v", err)
	}
	fmt.Printf("game %s\n", gameID)
	fmt.Println(format.QuitHint())

	for {
		state, err := client.State(ctx, gameID)
		if err != nil {
			log.Fatalf("fetch state: %v", err)
		}
		if state.Outcome != string(fow.OutcomeInProgress) {
			board, err := client.Board(ctx, gameID, string(fow.PerspectiveAudience))
			if err == nil {
				printRows(board.Rows, format)
			}
			fmt.Println(format.GameOver(fow.Outcome(state.Outcome)))
			return
		}

		board, err := client.Board(ctx, gameID, state.Turn)
		if err != nil {
			log.Fatalf("fetch board: %v", err)
		}
		printRows(board.Rows, format)
		fmt.Print(format.TurnPrompt(fow.Color(state.Turn)))

		line, ok := readLine(in)
		if !ok {
			return
		}
		from, to, err := notation.ParseMove(line)
		if err != nil {
			fmt.Println(format.BadInput())
			continue
		}
		resp, err := client.Move(ctx, gameID, notation.FormatSquare(from), notation.FormatSquare(to))
		if err != nil {
			log.Fatalf("submit move: %v", err)
		}
		if !resp.Accepted {
			fmt.Println(format.MoveRejectedText(resp.Reason))
		}
	}
}

func printRows(rows []string, format *presenter.Formatter) {
	var grid fow.Grid
	for r, row := range rows {
		if r >= fow.BoardSize {
			break
		}
		for c, sym := range []rune(row) {
			if c >= fow.BoardSize {
				break
			}
			grid[r][c] = sym
		}
	}
	fmt.Println(format.Board(grid))
}

func readLine(in *bufio.Scanner) (string, bool) {
	if !in.Scan() {
		return "", false
	}
	line := strings.TrimSpace(in.Text())
	if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
		return "", false
	}
	return line, true
}
