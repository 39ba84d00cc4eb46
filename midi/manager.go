package midi

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"note-quiz/debug"
)

// ErrPortsTimeout is returned when the MIDI driver does not answer a port
// listing in time (CoreMIDI can hang)
var ErrPortsTimeout = errors.New("midi: timed out listing ports")

// PortTimeout bounds every port listing
const PortTimeout = 3 * time.Second

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of MIDI controllers
type DeviceManager struct {
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
	inputFilter string // keyboards must match this port name when set
}

// NewDeviceManager creates a new device manager. inputPort restricts which
// keyboards are picked up; empty accepts any non-Launchpad input.
func NewDeviceManager(inputPort string) *DeviceManager {
	return &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		inputFilter: inputPort,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

// Ports lists the MIDI input and output ports, giving up after timeout
func Ports(timeout time.Duration) ([]drivers.In, []drivers.Out, error) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	select {
	case result := <-ch:
		return result.inPorts, result.outPorts, nil
	case <-time.After(timeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return nil, nil, ErrPortsTimeout
	}
}

func (dm *DeviceManager) scan() {
	inPorts, outPorts, err := Ports(PortTimeout)
	if err != nil {
		debug.Log("midi", "scan skipped: %v", err)
		return
	}

	// Build map of what we see now
	seenIDs := make(map[string]bool)

	for i, inPort := range inPorts {
		id := inPort.String()
		kind := ClassifyPort(id, dm.inputFilter)
		if kind == ControllerUnknown {
			continue
		}
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		var ctrl Controller
		switch kind {
		case ControllerLaunchpad:
			ctrl, err = NewLaunchpadController(id, inPorts[i], matchingOut(id, outPorts))
		case ControllerKeyboard:
			ctrl, err = NewKeyboardController(id, inPorts[i])
		}
		if err != nil {
			debug.Log("midi", "open %s: %v", id, err)
			continue
		}
		debug.Log("midi", "connected %s (%s)", id, kind)

		dm.mu.Lock()
		dm.controllers[id] = ctrl
		dm.mu.Unlock()

		dm.events <- DeviceEvent{
			Type:       DeviceConnected,
			Controller: ctrl,
			ID:         id,
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		c := dm.controllers[id]
		c.Close()
		delete(dm.controllers, id)
		debug.Log("midi", "disconnected %s", id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

func matchingOut(inName string, outPorts []drivers.Out) drivers.Out {
	name := strings.ToLower(inName)
	for j, op := range outPorts {
		if strings.ToLower(op.String()) == name {
			return outPorts[j]
		}
	}
	return nil
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// ClassifyPort decides what kind of controller an input port is, or
// ControllerUnknown if it should be ignored
func ClassifyPort(name, keyboardFilter string) ControllerType {
	if isLaunchpad(name) {
		return ControllerLaunchpad
	}
	if isKeyboard(name, keyboardFilter) {
		return ControllerKeyboard
	}
	return ControllerUnknown
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}

func isKeyboard(name, filter string) bool {
	lower := strings.ToLower(name)
	// other Launchpad ports (DAW) and loopback ports are never keyboards
	if strings.Contains(lower, "launchpad") || strings.Contains(lower, "through") {
		return false
	}
	if filter == "" {
		return true
	}
	return strings.Contains(lower, strings.ToLower(filter))
}
