// Command mobiwise-cli is a terminal chat client for a running MobiWise
// server. It drives the same session state machine the web UI uses.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"mobiwise/internal/client"
	"mobiwise/internal/models"
	"mobiwise/internal/session"
)

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "MobiWise server base URL")
	model := flag.String("model", models.DefaultModel, "Gemini model to use")
	flag.Parse()

	c := client.NewClient(*baseURL)
	sess := session.New(c, *model)

	fmt.Println("MobiWise terminal client. Commands: /new, /clear, /quit")
	printMessages(sess.Messages())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit":
			return
		case "/new":
			sess.NewChat()
			printMessages(sess.Messages())
			continue
		case "/clear":
			sess.Clear()
			fmt.Println("(conversation cleared)")
			continue
		}

		reply, err := sess.Submit(context.Background(), line)
		if errors.Is(err, session.ErrBusy) {
			fmt.Println("(still waiting for the previous reply)")
			continue
		}
		if err != nil || reply == nil {
			continue
		}

		printMessage(*reply)
	}
}

func printMessages(messages []session.Message) {
	for _, m := range messages {
		printMessage(m)
	}
}

func printMessage(m session.Message) {
	author := "You"
	if m.Role == "model" {
		author = "MobiWise"
	}
	fmt.Printf("\n%s: %s\n", author, m.Content)

	for _, p := range m.Phones {
		printPhoneCard(p)
	}
	if m.ComparisonSummary != "" {
		fmt.Printf("\nSummary: %s\n", m.ComparisonSummary)
	}
}

func printPhoneCard(p models.PhoneRecord) {
	fmt.Printf("\n  %s %s — ₹%.0f\n", p.Brand, p.Model, p.Price)
	fmt.Printf("    OS:       %s\n", p.OS)
	fmt.Printf("    Display:  %s (%s)\n", p.Display, p.Size)
	ois := "no OIS"
	if p.Camera.OIS {
		ois = "OIS"
	}
	fmt.Printf("    Camera:   %s (%s)\n", p.Camera.Main, ois)
	fmt.Printf("    Battery:  %s, %s\n", p.Battery, p.Charging)
	if len(p.Tags) > 0 {
		fmt.Printf("    Tags:     %s\n", strings.Join(p.Tags, ", "))
	}
}
