package web

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cast"
	"github.com/zishang520/socket.io/servers/socket/v3"

	"minimalmon/internal/netx"
	"minimalmon/internal/refresh"
	"minimalmon/internal/system"
	"minimalmon/internal/view"
)

// IntervalSelector changes the refresh period of the running driver
type IntervalSelector interface {
	SelectInterval(index int) error
	Index() int
}

// Broadcaster emits an event to every connected client
type Broadcaster interface {
	Broadcast(event string, data ...any) error
}

// Dashboard is the browser display surface. It pushes each rendered view to
// all clients of the dashboard namespace.
type Dashboard struct {
	out      Broadcaster
	logger   *slog.Logger
	mutex    sync.RWMutex
	selector IntervalSelector
	last     *view.View
}

// IntervalState is sent to clients on connect and after an interval change
type IntervalState struct {
	Index  int      `json:"index"`
	Label  string   `json:"label"`
	Labels []string `json:"labels"`
}

// NewDashboard creates a dashboard surface emitting through out
func NewDashboard(out Broadcaster, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dashboard{out: out, logger: logger}
}

// SetSelector binds the driver whose interval clients may change
func (d *Dashboard) SetSelector(s IntervalSelector) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.selector = s
}

// Show renders the snapshot and replaces the view on every client
func (d *Dashboard) Show(snap *system.Snapshot) {
	v := view.Render(snap)

	d.mutex.Lock()
	d.last = &v
	d.mutex.Unlock()

	if err := d.out.Broadcast("system_view", v); err != nil {
		d.logger.Warn("failed to broadcast view", "error", err)
	}
}

// LastView returns the most recent view, if any
func (d *Dashboard) LastView() (view.View, bool) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	if d.last == nil {
		return view.View{}, false
	}
	return *d.last, true
}

// SelectInterval applies an interval index received from a client
func (d *Dashboard) SelectInterval(data ...any) (IntervalState, error) {
	index, err := parseIndex(data)
	if err != nil {
		return IntervalState{}, err
	}

	d.mutex.RLock()
	selector := d.selector
	d.mutex.RUnlock()
	if selector == nil {
		return IntervalState{}, errors.New("refresh driver is not running")
	}

	if err := selector.SelectInterval(index); err != nil {
		return IntervalState{}, err
	}
	return intervalState(index), nil
}

// State returns the currently selected interval
func (d *Dashboard) State() IntervalState {
	d.mutex.RLock()
	selector := d.selector
	d.mutex.RUnlock()

	index := refresh.DefaultIndex
	if selector != nil {
		index = selector.Index()
	}
	return intervalState(index)
}

func intervalState(index int) IntervalState {
	labels := refresh.Labels()
	return IntervalState{Index: index, Label: labels[index], Labels: labels}
}

// SetupDashboardService binds the dashboard to its socket.io namespace
func SetupDashboardService(ns *netx.Namespace, dash *Dashboard) {
	ns.OnConnect(dash.handleConnect)

	// Handle interval selection
	ns.AddEvent("set_interval", dash.handleSetInterval)

	// Handle manual refresh requests
	ns.AddEvent("refresh_data", dash.handleRefreshData)

	ns.RegisterEvents()
}

func (d *Dashboard) handleConnect(client *socket.Socket) {
	d.logger.Debug("dashboard client connected", "id", client.Id())

	client.Emit("dashboard_connected", d.State())
	d.sendLastView(client)
}

func (d *Dashboard) handleSetInterval(client *socket.Socket, data ...any) {
	state, err := d.SelectInterval(data...)
	if err != nil {
		client.Emit("dashboard_error", err.Error())
		return
	}
	client.Emit("interval_updated", state)
}

func (d *Dashboard) handleRefreshData(client *socket.Socket, data ...any) {
	d.sendLastView(client)
}

func (d *Dashboard) sendLastView(client *socket.Socket) {
	if v, ok := d.LastView(); ok {
		client.Emit("system_view", v)
	}
}

// parseIndex accepts a bare index, {"index": n}, or either wrapped in an array
func parseIndex(data []any) (int, error) {
	if len(data) == 0 {
		return 0, errors.New("no interval data provided")
	}

	value := data[0]
	if arr, ok := value.([]any); ok {
		if len(arr) == 0 {
			return 0, errors.New("no interval data provided")
		}
		value = arr[0]
	}
	if m, ok := value.(map[string]any); ok {
		raw, exists := m["index"]
		if !exists {
			return 0, errors.New("interval index is required")
		}
		value = raw
	}

	index, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("invalid interval index: %w", err)
	}
	return index, nil
}
