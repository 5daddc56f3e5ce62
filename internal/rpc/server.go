package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/nalindobhal/blog/internal/blog"
)

const namespace = "blog"

func New(logger *slog.Logger, manager *blog.Manager) *zenrpc.Server {
	rpcService := NewBlogService(manager)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register(namespace, rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "blog", nil))

	return rpcServer
}
