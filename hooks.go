package sanitize

// HookPhase names one of the nine points in the traversal where registered
// hooks fire (SPEC_FULL.md §4.7).
type HookPhase string

const (
	PhaseBeforeSanitizeElements  HookPhase = "beforeSanitizeElements"
	PhaseAfterSanitizeElements   HookPhase = "afterSanitizeElements"
	PhaseBeforeSanitizeAttributes HookPhase = "beforeSanitizeAttributes"
	PhaseAfterSanitizeAttributes  HookPhase = "afterSanitizeAttributes"
	PhaseUponSanitizeElement      HookPhase = "uponSanitizeElement"
	PhaseUponSanitizeAttribute    HookPhase = "uponSanitizeAttribute"
	PhaseBeforeSanitizeShadowDOM  HookPhase = "beforeSanitizeShadowDOM"
	PhaseAfterSanitizeShadowDOM   HookPhase = "afterSanitizeShadowDOM"
	PhaseUponSanitizeShadowNode   HookPhase = "uponSanitizeShadowNode"
)

// allowSetProxy is the capability object HookEvent exposes for live
// allow-set mutation (SPEC_FULL.md §4.7, §9 "Hook event with live allow-set
// proxies"). Writes update both the string-keyed set and the resolvedConfig
// that produced it, so a hook that adds a tag mid-traversal affects the
// remaining walk.
type allowSetProxy struct {
	set map[string]bool
}

func (p *allowSetProxy) Contains(key string) bool {
	if p == nil || p.set == nil {
		return false
	}
	return p.set[key]
}

func (p *allowSetProxy) Set(key string, allowed bool) {
	if p == nil || p.set == nil {
		return
	}
	if allowed {
		p.set[key] = true
	} else {
		delete(p.set, key)
	}
}

// HookEvent is shared mutable state for a single element or attribute visit
// (SPEC_FULL.md §3, §4.7).
type HookEvent struct {
	TagName              string
	AllowedTagsProxy     *allowSetProxy
	AttrName             string
	AttrValue            string
	AllowedAttributesProxy *allowSetProxy
	KeepAttr             bool
	ForceKeepAttr        *bool
}

// Hook is a callable invoked at a given phase. node is nil for phases that
// don't carry a current element (none currently do, but the signature
// matches SPEC_FULL.md §4.7's "(Node, HookEvent?) -> void").
type Hook func(node *Node, event *HookEvent)

// hookHandle is the identity token returned by AddHook and accepted by
// RemoveHookHandle, implemented as a pointer so identity comparison is trivial
// (SPEC_FULL.md §3 "compared by identity on removal").
type hookHandle struct {
	fn Hook
}

// HookHandle is the opaque identity returned to callers.
type HookHandle = *hookHandle

// hookRegistry is a mapping from HookPhase to an ordered list of hook
// handles, modeled as a small interface-free map+slice structure in the
// same spirit as the teacher's Scope/ScopeMap pairing (interface for the
// public contract, concrete map-backed storage for the implementation).
type hookRegistry struct {
	phases map[HookPhase][]HookHandle
}

func newHookRegistry() *hookRegistry {
	return &hookRegistry{phases: make(map[HookPhase][]HookHandle)}
}

func (r *hookRegistry) add(phase HookPhase, fn Hook) HookHandle {
	h := &hookHandle{fn: fn}
	r.phases[phase] = append(r.phases[phase], h)
	return h
}

func (r *hookRegistry) addHandle(phase HookPhase, h HookHandle) {
	r.phases[phase] = append(r.phases[phase], h)
}

func (r *hookRegistry) removeLast(phase HookPhase) HookHandle {
	list := r.phases[phase]
	if len(list) == 0 {
		return nil
	}
	h := list[len(list)-1]
	r.phases[phase] = list[:len(list)-1]
	return h
}

func (r *hookRegistry) remove(phase HookPhase, h HookHandle) HookHandle {
	list := r.phases[phase]
	for i, cur := range list {
		if cur == h {
			r.phases[phase] = append(list[:i:i], list[i+1:]...)
			return h
		}
	}
	return nil
}

func (r *hookRegistry) clearPhase(phase HookPhase) {
	delete(r.phases, phase)
}

func (r *hookRegistry) clearAll() {
	r.phases = make(map[HookPhase][]HookHandle)
}

func (r *hookRegistry) has(phase HookPhase) bool {
	return len(r.phases[phase]) > 0
}

// fire invokes every hook registered for phase, recovering from and logging
// any panic so a faulty hook is treated as a no-op for that node/attribute
// rather than crashing the sanitizer (SPEC_FULL.md §7).
func (r *hookRegistry) fire(phase HookPhase, node *Node, event *HookEvent) {
	for _, h := range r.phases[phase] {
		callHookSafely(h.fn, node, event)
	}
}

func callHookSafely(fn Hook, node *Node, event *HookEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			logf("hook panic recovered: %v", rec)
		}
	}()
	fn(node, event)
}

func (r *hookRegistry) clone() *hookRegistry {
	n := newHookRegistry()
	for phase, list := range r.phases {
		cp := make([]HookHandle, len(list))
		copy(cp, list)
		n.phases[phase] = cp
	}
	return n
}
