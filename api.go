package sanitize

import (
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// api.go implements the public entry points of SPEC_FULL.md §6 and the
// global state of §3/§5: a persistent Configuration override, the hook
// registry, and the last call's removed log, all guarded by a single
// process-wide recursive mutex (so a hook may call back into another public
// entry point without deadlocking itself). Field-doc density here follows
// the teacher's Handler-struct style in the now-removed pages.go.

// recursiveMutex is a goroutine-reentrant mutex: Lock is a no-op (beyond a
// counter bump) when called again from the goroutine that already holds it,
// which is required because hook callbacks run on the caller's goroutine,
// inside the lock, and may themselves call a public entry point
// (SPEC_FULL.md §5).
type recursiveMutex struct {
	guard   sync.Mutex
	holder  sync.Mutex
	ownerID uint64
	count   int
}

func (m *recursiveMutex) Lock() {
	gid := goroutineID()
	m.guard.Lock()
	if m.count > 0 && m.ownerID == gid {
		m.count++
		m.guard.Unlock()
		return
	}
	m.guard.Unlock()

	m.holder.Lock()

	m.guard.Lock()
	m.ownerID = gid
	m.count = 1
	m.guard.Unlock()
}

func (m *recursiveMutex) Unlock() {
	m.guard.Lock()
	defer m.guard.Unlock()
	m.count--
	if m.count == 0 {
		m.ownerID = 0
		m.holder.Unlock()
	}
}

// goroutineID extracts the current goroutine's id from its stack trace
// header, the same technique chtml/err.go's captureStack uses to read
// runtime.Stack for diagnostics.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	fields := strings.Fields(strings.TrimPrefix(string(buf), "goroutine "))
	if len(fields) == 0 {
		return 0
	}
	id, _ := strconv.ParseUint(fields[0], 10, 64)
	return id
}

var globalMu recursiveMutex

// persistentConfig is the optional configuration installed by SetConfig,
// overriding the per-call argument until ClearConfig is called
// (SPEC_FULL.md §3 "Global state").
var persistentConfig *Configuration

// globalHooks is the process-wide hook registry (SPEC_FULL.md §3/§4.7).
var globalHooks = newHookRegistry()

// lastRemoved is the removed log from the most recent public call
// (SPEC_FULL.md §3 "Removed-items log", §6 "Observable globals").
var lastRemoved []Removed

// logger receives internal diagnostics (disabled user regex, recovered
// hook panics). It defaults to slog.Default(), the same logging approach
// the teacher's pages.Handler uses (a *slog.Logger field), and never
// affects sanitization results.
var logger = slog.Default()

// SetLogger installs the package-level diagnostic logger.
func SetLogger(l *slog.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if l != nil {
		logger = l
	}
}

func logf(format string, args ...any) {
	logger.Warn("go-sanitize: " + fmt.Sprintf(format, args...))
}

// SetConfig installs c as the persistent configuration, used by every public
// entry point in place of any per-call Configuration argument until
// ClearConfig is called (SPEC_FULL.md §6).
func SetConfig(c Configuration) {
	globalMu.Lock()
	defer globalMu.Unlock()
	cp := c
	persistentConfig = &cp
}

// ClearConfig removes any persistent configuration installed by SetConfig.
func ClearConfig() {
	globalMu.Lock()
	defer globalMu.Unlock()
	persistentConfig = nil
}

// AddHook registers fn for phase and returns a handle identifying this
// registration for later removal.
func AddHook(phase HookPhase, fn Hook) HookHandle {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalHooks.add(phase, fn)
}

// AddHookHandle re-registers a handle previously returned by AddHook (or
// removed via RemoveHook) under phase.
func AddHookHandle(phase HookPhase, h HookHandle) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalHooks.addHandle(phase, h)
}

// RemoveHook pops and returns the most recently registered hook for phase,
// or nil if none is registered.
func RemoveHook(phase HookPhase) HookHandle {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalHooks.removeLast(phase)
}

// RemoveHookHandle removes a specific hook by identity from phase.
func RemoveHookHandle(phase HookPhase, h HookHandle) HookHandle {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalHooks.remove(phase, h)
}

// RemoveHooks clears every hook registered for phase.
func RemoveHooks(phase HookPhase) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalHooks.clearPhase(phase)
}

// RemoveAllHooks clears every hook registered for every phase.
func RemoveAllHooks() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalHooks.clearAll()
}

// LastRemoved returns the removed-items log from the most recently completed
// public call (SPEC_FULL.md §6 "Observable globals").
func LastRemoved() []Removed {
	globalMu.Lock()
	defer globalMu.Unlock()
	out := make([]Removed, len(lastRemoved))
	copy(out, lastRemoved)
	return out
}

// Input is any of the three shapes a sanitize call accepts (SPEC_FULL.md
// §6): a single string, a slice of strings (joined by ","), or an
// already-parsed *Node subtree.
type Input any

// resolveInput normalizes Input into an input string for the HTML/XHTML
// parse pipeline, or a *Node when the caller passed one directly (in which
// case parsing is skipped entirely, per SPEC_FULL.md §1's "parsed DOM
// subtree" input shape).
func resolveInput(in Input) (string, *Node) {
	switch v := in.(type) {
	case string:
		return v, nil
	case []string:
		return strings.Join(v, ","), nil
	case *Node:
		return "", v
	default:
		return "", nil
	}
}

func effectiveConfig(config []Configuration) Configuration {
	if persistentConfig != nil {
		return *persistentConfig
	}
	if len(config) > 0 {
		return config[0]
	}
	return DefaultConfig()
}

// withCall resolves configuration/hooks under the lock, runs fn (which must
// not itself re-lock, and which publishes the removed log), and recovers from any
// unexpected panic in fn — treated as the "recoverable" error kind of
// SPEC_FULL.md §7 for every variant except SanitizeInPlace.
func withCall(config []Configuration, fn func(rc *resolvedConfig, hooks *hookRegistry) (ok bool)) bool {
	globalMu.Lock()
	defer globalMu.Unlock()

	c := effectiveConfig(config)
	rc := resolve(c)
	hooks := globalHooks

	ok := false
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				logf("recovered panic during sanitize: %v", rec)
				ok = false
			}
		}()
		ok = fn(rc, hooks)
	}()
	return ok
}

// Sanitize is the primary entry point (SPEC_FULL.md §6): it returns the
// serialized body fragment, or "" if an unexpected error occurs.
func Sanitize(input Input, config ...Configuration) string {
	var out string
	withCall(config, func(rc *resolvedConfig, hooks *hookRegistry) bool {
		s, _, ok := sanitizeInputToString(input, rc, hooks)
		out = s
		return ok
	})
	return out
}

func sanitizeInputToString(input Input, rc *resolvedConfig, hooks *hookRegistry) (string, *sanitizerState, bool) {
	str, node := resolveInput(input)
	var root *Node
	var state *sanitizerState
	var err error

	if node != nil {
		root = &Node{Type: DocumentNode}
		root.AppendChild(deepClone(node))
		state = &sanitizerState{rc: rc, hooks: hooks}
		state.sanitizeTree(root, rc.parserMediaTypeIsXHTML())
		state.postTraversalPasses(root)
	} else {
		root, state, err = runSanitize(str, rc, hooks)
	}

	lastRemoved = nil
	if state != nil {
		lastRemoved = state.removed
	}
	if err != nil {
		return "", state, false
	}

	if rc.parserMediaType == MediaTypeXHTML {
		return serializeXHTML(root), state, true
	}
	return serializeHTML(root, rc), state, true
}

// SanitizeToDOM returns the same serialization as Sanitize: the sanitized
// children of the parse root. No enclosing root element (such as <body>) is
// serialized around them.
func SanitizeToDOM(input Input, config ...Configuration) string {
	var out string
	withCall(config, func(rc *resolvedConfig, hooks *hookRegistry) bool {
		body, _, ok := sanitizeInputToString(input, rc, hooks)
		out = body
		return ok
	})
	return out
}

// FragmentResult is the return shape of SanitizeToFragment (SPEC_FULL.md
// §6).
type FragmentResult struct {
	HTML              string
	FirstChildNodeValue string
	HasFirstChildValue bool
}

// SanitizeToFragment returns the serialized fragment plus, when the first
// surviving child is text-like, its raw value.
func SanitizeToFragment(input Input, config ...Configuration) FragmentResult {
	var out FragmentResult
	withCall(config, func(rc *resolvedConfig, hooks *hookRegistry) bool {
		str, node := resolveInput(input)
		var root *Node
		var state *sanitizerState
		var err error
		if node != nil {
			root = &Node{Type: DocumentNode}
			root.AppendChild(deepClone(node))
			state = &sanitizerState{rc: rc, hooks: hooks}
			state.sanitizeTree(root, rc.parserMediaTypeIsXHTML())
			state.postTraversalPasses(root)
		} else {
			root, state, err = runSanitize(str, rc, hooks)
		}
		lastRemoved = nil
		if state != nil {
			lastRemoved = state.removed
		}
		if err != nil {
			return false
		}
		if rc.parserMediaType == MediaTypeXHTML {
			out.HTML = serializeXHTML(root)
		} else {
			out.HTML = serializeHTML(root, rc)
		}
		if root.FirstChild != nil && (root.FirstChild.Type == TextNode || root.FirstChild.Type == DataNode) {
			out.FirstChildNodeValue = root.FirstChild.Data
			out.HasFirstChildValue = true
		}
		return true
	})
	return out
}

// DocumentResult is the return shape of SanitizeToDocument (SPEC_FULL.md
// §6).
type DocumentResult struct {
	HTML     string
	HeadHTML string
	BodyHTML string
}

// SanitizeToDocument parses and sanitizes input as a full document.
func SanitizeToDocument(input Input, config ...Configuration) DocumentResult {
	var out DocumentResult
	withCall(config, func(rc *resolvedConfig, hooks *hookRegistry) bool {
		str, _ := resolveInput(input)
		root, state, err := runSanitizeDocument(str, rc, hooks)
		lastRemoved = nil
		if state != nil {
			lastRemoved = state.removed
		}
		if err != nil {
			return false
		}
		if rc.parserMediaType == MediaTypeXHTML {
			out.HTML = serializeXHTML(root)
			return true
		}
		var doctypeHTML string
		if rc.wholeDocument {
			if dt := findDoctype(root); dt != nil {
				var sb strings.Builder
				writeDoctype(&sb, dt)
				doctypeHTML = sb.String()
			}
		}
		if head := findFirst(root, "head"); head != nil {
			out.HeadHTML = serializeHTML(head, rc)
		}
		if body := findFirst(root, "body"); body != nil {
			out.BodyHTML = serializeHTML(body, rc)
		}
		out.HTML = doctypeHTML + serializeHTML(root, rc)
		return true
	})
	return out
}

// SanitizeToDocumentTree returns the mutable sanitized parse tree.
func SanitizeToDocumentTree(input Input, config ...Configuration) *Node {
	var out *Node
	withCall(config, func(rc *resolvedConfig, hooks *hookRegistry) bool {
		str, _ := resolveInput(input)
		root, state, err := runSanitizeDocument(str, rc, hooks)
		lastRemoved = nil
		if state != nil {
			lastRemoved = state.removed
		}
		if err != nil {
			return false
		}
		out = root
		return true
	})
	return out
}

// RemovedResult is the return shape of SanitizeAndGetRemoved.
type RemovedResult struct {
	Sanitized string
	Removed   []Removed
}

// SanitizeAndGetRemoved sanitizes input and returns both the output and the
// removed-items log for this call.
func SanitizeAndGetRemoved(input Input, config ...Configuration) RemovedResult {
	var out RemovedResult
	withCall(config, func(rc *resolvedConfig, hooks *hookRegistry) bool {
		s, state, ok := sanitizeInputToString(input, rc, hooks)
		out.Sanitized = s
		if state != nil {
			out.Removed = append([]Removed(nil), state.removed...)
		}
		return ok
	})
	return out
}

// SanitizeInPlace mutates element in place and returns it. It is the only
// entry point that surfaces an error to the caller: ForbiddenRootNode when
// element itself would be removed or unwrapped (SPEC_FULL.md §6, §7).
func SanitizeInPlace(element *Node, config ...Configuration) (*Node, error) {
	var retErr error
	globalMu.Lock()
	defer globalMu.Unlock()

	c := effectiveConfig(config)
	rc := resolve(c)

	state, err := sanitizeInPlaceTree(element, rc, globalHooks)
	lastRemoved = nil
	if state != nil {
		lastRemoved = state.removed
	}
	if err != nil {
		retErr = err
		return element, retErr
	}
	return element, nil
}
