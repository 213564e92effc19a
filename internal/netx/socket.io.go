package netx

import (
	"net/http"
	"sync"

	"github.com/zishang520/socket.io/servers/engine/v3"
	"github.com/zishang520/socket.io/servers/socket/v3"
	"github.com/zishang520/socket.io/v3/pkg/types"
)

// DashboardNamespace carries the rendered metrics view to browsers
const DashboardNamespace = "/dashboard"

var (
	globalServer *Socket
	globalOnce   sync.Once
)

// Socket represents a wrapper around the Socket.IO server
type Socket struct {
	sock       *socket.Server
	Namespaces map[string]*Namespace
}

// Initialize configures and creates the Socket.IO server
func (self *Socket) Initialize() {
	opts := socket.DefaultServerOptions()
	opts.SetPath("/socket.io")
	opts.SetTransports(types.NewSet(
		engine.Polling,   // HTTP long-polling transport
		engine.WebSocket, // WebSocket transport for real-time communication
	))
	opts.SetMaxHttpBufferSize(1e6)
	self.sock = socket.NewServer(nil, opts)
	self.Namespaces = make(map[string]*Namespace)
}

// AddNamespace creates a new Socket.IO namespace and adds it to the server
func (self *Socket) AddNamespace(name string) {
	namespace := &Namespace{namespace: self.sock.Of(name, nil)}
	namespace.Initialize()
	self.Namespaces[name] = namespace
}

// GetNamespace returns the desired namespace
func (self *Socket) GetNamespace(name string) *Namespace {
	return self.Namespaces[name]
}

// Handler returns an HTTP handler for the Socket.IO server
func (self *Socket) Handler() http.Handler {
	return self.sock.ServeHandler(nil)
}

// SetupGlobalServer creates the process-wide server with all namespaces
func SetupGlobalServer() *Socket {
	globalOnce.Do(func() {
		globalServer = new(Socket)
		globalServer.Initialize()
		globalServer.AddNamespace(DashboardNamespace)
	})
	return globalServer
}

// GetGlobalServer returns the server created by SetupGlobalServer
func GetGlobalServer() *Socket {
	return SetupGlobalServer()
}

// GetHandler returns the HTTP handler of the global server
func GetHandler() http.Handler {
	return GetGlobalServer().Handler()
}

// Namespace represents a Socket.IO namespace with custom event handling
type Namespace struct {
	namespace socket.Namespace
	events    map[string]func(client *socket.Socket, data ...any)
	onConnect func(client *socket.Socket)
}

// Initialize sets up the namespace with default event handlers
func (self *Namespace) Initialize() {
	self.events = map[string]func(*socket.Socket, ...any){
		"disconnect": func(client *socket.Socket, reason ...any) {},
	}
}

// AddEvent registers a custom event handler for the namespace
func (self *Namespace) AddEvent(event string, f func(*socket.Socket, ...any)) {
	self.events[event] = f
}

// OnConnect runs f for every new client before its events are bound
func (self *Namespace) OnConnect(f func(client *socket.Socket)) {
	self.onConnect = f
}

// RegisterEvents activates all the event handlers for new client connections
func (self *Namespace) RegisterEvents() {
	self.namespace.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		for event, f := range self.events {
			client.On(event, func(data ...any) { f(client, data...) })
		}
		if self.onConnect != nil {
			self.onConnect(client)
		}
	})
}

// Broadcast emits an event to every client of the namespace
func (self *Namespace) Broadcast(event string, data ...any) error {
	return self.namespace.Emit(event, data...)
}
