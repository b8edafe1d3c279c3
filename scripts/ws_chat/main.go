package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/homeboard/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	fmt.Printf("Connected to %s\n", *addr)
	fmt.Println("Type a message and press Enter. Prefix with /item, /task or /image to add to other lists. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		if outbound.Type == proto.OutboundTypeError && outbound.Error != nil {
			fmt.Printf("! %s: %s\n", outbound.Error.Code, outbound.Error.Msg)
			continue
		}

		data, _ := outbound.Data.(map[string]any)
		switch outbound.Event {
		case proto.EventMessageUpdate:
			fmt.Printf("[chat] %v\n", data["message"])
		case proto.EventShoppingUpdate:
			fmt.Printf("[shopping] %v\n", data["item"])
		case proto.EventTaskUpdate:
			fmt.Printf("[task] %v\n", data["task"])
		case proto.EventImageUpdate:
			fmt.Printf("[image] %v\n", data["filename"])
		default:
			fmt.Printf("event=%s data=%v\n", outbound.Event, outbound.Data)
		}
	}
}

// parseLine maps "/item milk" style input to an inbound type and value.
func parseLine(line string) (string, string) {
	prefixes := map[string]string{
		"/item ":  proto.InboundTypeNewItem,
		"/task ":  proto.InboundTypeNewTask,
		"/image ": proto.InboundTypeNewImage,
	}
	for prefix, typ := range prefixes {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return typ, strings.TrimSpace(rest)
		}
	}
	return proto.InboundTypeNewMessage, line
}

func writeLoop(ctx context.Context, conn *websocket.Conn) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			typ, value := parseLine(text)
			field, _, _ := proto.FieldFor(typ)
			inbound, err := proto.NewInbound(typ, map[string]string{field: value})
			if err != nil {
				log.Printf("marshal %s: %v", typ, err)
				return
			}
			if err := wsjson.Write(ctx, conn, inbound); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}
