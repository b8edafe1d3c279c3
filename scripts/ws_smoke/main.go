package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/homeboard/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	kind := flag.String("type", proto.InboundTypeNewMessage, "inbound event: new_message, new_item, new_task, new_image")
	value := flag.String("value", "hello from smoke test", "entry value to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	field, wantEvent, ok := proto.FieldFor(*kind)
	if !ok {
		return fmt.Errorf("unknown event type %q", *kind)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	inbound, err := proto.NewInbound(*kind, map[string]string{field: *value})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", *kind, err)
	}
	if err := wsjson.Write(ctx, conn, inbound); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		if outbound.Type == proto.OutboundTypeError && outbound.Error != nil {
			return fmt.Errorf("server error %s: %s", outbound.Error.Code, outbound.Error.Msg)
		}

		fmt.Printf("Received outbound: type=%s event=%s data=%v\n", outbound.Type, outbound.Event, outbound.Data)

		data, _ := outbound.Data.(map[string]any)
		if outbound.Event == wantEvent && data[field] == *value {
			fmt.Println("echo received")
			return nil
		}
	}
}
