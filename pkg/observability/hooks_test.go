package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopCodecHooks{}
	c.OnEncode(ctx, "compact", 25, time.Millisecond, nil)
	c.OnDecode(ctx, "wide", 52, time.Millisecond, nil)

	p := NoopPipelineHooks{}
	p.OnCompileStart(ctx, "schema.yaml")
	p.OnCompileComplete(ctx, "schema.yaml", 3, time.Second, nil)

	ch := NoopCacheHooks{}
	ch.OnCacheHit(ctx, "artifact")
	ch.OnCacheMiss(ctx, "artifact")
	ch.OnCacheSet(ctx, "artifact", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "GET", "/roots/{key}", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Codec().(NoopCodecHooks); !ok {
		t.Error("Codec() should return NoopCodecHooks by default")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customCodec := &testCodecHooks{}
	SetCodecHooks(customCodec)
	if Codec() != customCodec {
		t.Error("SetCodecHooks should set custom hooks")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	Reset()
	if _, ok := Codec().(NoopCodecHooks); !ok {
		t.Error("Reset() should restore NoopCodecHooks")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Reset() should restore NoopServerHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testCodecHooks{}
	SetCodecHooks(custom)
	SetCodecHooks(nil)

	if Codec() != custom {
		t.Error("SetCodecHooks(nil) should be ignored")
	}
}

type testCodecHooks struct{ NoopCodecHooks }
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
