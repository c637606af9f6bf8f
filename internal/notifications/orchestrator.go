package notifications

import (
	"context"
	"sync"

	"selah/internal/kvstore"
	"selah/internal/platform"
	"selah/internal/profile"

	"go.uber.org/zap"
)

// Snapshot is the observable state exposed to the UI layer. IsEnabled
// mirrors HasPermission; it is kept denormalized for UI convenience.
type Snapshot struct {
	HasPermission bool
	IsEnabled     bool
	CanAskAgain   bool
	Permission    platform.Permission
	Settings      Settings
	Scheduled     []platform.Scheduled
	PushToken     string
	Loading       bool
}

// Orchestrator is the single entry point for the notification subsystem.
// It owns initialization sequencing, the observable snapshot, and the
// action surface. Actions are serialized; a second call while one is in
// flight waits for the first.
type Orchestrator struct {
	api        platform.API
	gateway    *PermissionGateway
	store      *SettingsStore
	reconciler *ScheduleReconciler
	dispatcher *Dispatcher
	profile    profile.TokenUpdater
	userID     string
	log        *zap.Logger

	opMu        sync.Mutex // serializes actions
	initialized bool

	snapMu sync.Mutex // guards snap only
	snap   Snapshot
}

// New wires the subsystem together. The profile updater may be nil; the
// token hand-off is then skipped.
func New(api platform.API, kv *kvstore.Store, prof profile.TokenUpdater, userID string, weekly WeeklyCue, log *zap.Logger) *Orchestrator {
	store := NewSettingsStore(kv, log)
	o := &Orchestrator{
		api:        api,
		gateway:    NewPermissionGateway(api, log),
		store:      store,
		reconciler: NewScheduleReconciler(api, weekly, log),
		dispatcher: NewDispatcher(api, store, log),
		profile:    prof,
		userID:     userID,
		log:        log,
	}
	o.snap.Settings = DefaultSettings()

	// Settings writes and schedule reconciliation form one critical
	// section; the hook keeps them coupled for every saver.
	store.SetOnSave(func(ctx context.Context, s Settings) error {
		return o.reconciler.Reconcile(ctx, s, o.gateway.Check(ctx))
	})
	return o
}

// Initialize brings the subsystem up: permission check, push registration,
// settings load, schedule reconcile, snapshot refresh. Every step's failure
// is absorbed and logged; the orchestrator always ends up ready and never
// blocks application startup. Repeated calls are no-ops.
func (o *Orchestrator) Initialize(ctx context.Context) {
	o.opMu.Lock()
	defer o.opMu.Unlock()
	if o.initialized {
		return
	}
	o.initLocked(ctx)
	o.initialized = true
}

// initLocked runs the full initialization sequence. Callers hold opMu.
func (o *Orchestrator) initLocked(ctx context.Context) {
	o.setLoading(true)
	defer o.setLoading(false)

	st := o.gateway.Check(ctx)

	token := ""
	if st.GrantedNow() && o.api.SupportsPush() {
		tok, err := o.api.PushToken(ctx)
		if err != nil {
			o.log.Warn("push token unavailable", zap.Error(err))
		} else {
			token = tok
			if o.profile != nil {
				if err := o.profile.UpdatePushToken(ctx, o.userID, token); err != nil {
					o.log.Warn("push token hand-off failed", zap.Error(err))
				}
			}
		}
	}

	settings := o.store.Load()
	if !o.store.Exists() {
		// First run: persist the defaults so later savers rewrite a full
		// record. Save reconciles through the on-save hook.
		if err := o.store.Save(ctx, settings); err != nil {
			o.log.Warn("persisting default settings failed", zap.Error(err))
		}
	} else if err := o.reconciler.Reconcile(ctx, settings, st); err != nil {
		o.log.Warn("schedule reconcile failed", zap.Error(err))
	}

	scheduled, err := o.api.Scheduled(ctx)
	if err != nil {
		o.log.Warn("listing scheduled notifications failed", zap.Error(err))
		scheduled = nil
	}

	o.snapMu.Lock()
	o.snap = Snapshot{
		HasPermission: st.GrantedNow(),
		IsEnabled:     st.GrantedNow(),
		CanAskAgain:   st.CanAskAgain,
		Permission:    st.Permission,
		Settings:      settings,
		Scheduled:     scheduled,
		PushToken:     token,
		Loading:       true, // cleared by the deferred setLoading
	}
	o.snapMu.Unlock()
}

// RequestPermissions prompts for permission through the gateway. On success
// the full initialization sequence re-runs, because push registration and
// scheduling were previously skipped. ErrPermissionDenied means the
// platform will not prompt again; route the user to system settings.
func (o *Orchestrator) RequestPermissions(ctx context.Context) (bool, error) {
	o.opMu.Lock()
	defer o.opMu.Unlock()

	granted, err := o.gateway.Request(ctx)
	if err != nil {
		o.log.Warn("permission request failed", zap.Error(err))
		return false, err
	}
	if granted {
		o.initLocked(ctx)
		o.initialized = true
	}
	return granted, nil
}

// UpdateSettings validates and persists the new record, reconciles the
// platform schedule, and refreshes the scheduled projection. A validation
// failure leaves both the persisted record and the schedule untouched.
func (o *Orchestrator) UpdateSettings(ctx context.Context, s Settings) error {
	o.opMu.Lock()
	defer o.opMu.Unlock()
	o.setLoading(true)
	defer o.setLoading(false)

	if err := o.store.Save(ctx, s); err != nil {
		return err
	}

	o.snapMu.Lock()
	o.snap.Settings = s
	o.snapMu.Unlock()

	return o.refreshScheduledLocked(ctx)
}

// RefreshScheduled re-reads the platform queue into the snapshot.
func (o *Orchestrator) RefreshScheduled(ctx context.Context) error {
	o.opMu.Lock()
	defer o.opMu.Unlock()
	return o.refreshScheduledLocked(ctx)
}

// CancelAll clears the platform queue and the snapshot projection.
func (o *Orchestrator) CancelAll(ctx context.Context) error {
	o.opMu.Lock()
	defer o.opMu.Unlock()

	if err := o.api.CancelAll(ctx); err != nil {
		return err
	}
	return o.refreshScheduledLocked(ctx)
}

// SendPrayer passes through to the dispatcher.
func (o *Orchestrator) SendPrayer(ctx context.Context, title string) error {
	o.opMu.Lock()
	defer o.opMu.Unlock()
	return o.dispatcher.SendPrayer(ctx, title)
}

// SendMilestone passes through to the dispatcher.
func (o *Orchestrator) SendMilestone(ctx context.Context, text string) error {
	o.opMu.Lock()
	defer o.opMu.Unlock()
	return o.dispatcher.SendMilestone(ctx, text)
}

// SendCommunity passes through to the dispatcher.
func (o *Orchestrator) SendCommunity(ctx context.Context, text string) error {
	o.opMu.Lock()
	defer o.opMu.Unlock()
	return o.dispatcher.SendCommunity(ctx, text)
}

// SendTest passes through to the dispatcher; never gated.
func (o *Orchestrator) SendTest(ctx context.Context) error {
	o.opMu.Lock()
	defer o.opMu.Unlock()
	return o.dispatcher.SendTest(ctx)
}

// Snapshot returns a copy of the observable state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.snapMu.Lock()
	defer o.snapMu.Unlock()
	snap := o.snap
	snap.Scheduled = append([]platform.Scheduled(nil), o.snap.Scheduled...)
	return snap
}

// refreshScheduledLocked updates the snapshot projection. Callers hold opMu.
func (o *Orchestrator) refreshScheduledLocked(ctx context.Context) error {
	scheduled, err := o.api.Scheduled(ctx)
	if err != nil {
		o.log.Warn("listing scheduled notifications failed", zap.Error(err))
		return err
	}
	o.snapMu.Lock()
	o.snap.Scheduled = scheduled
	o.snapMu.Unlock()
	return nil
}

func (o *Orchestrator) setLoading(v bool) {
	o.snapMu.Lock()
	o.snap.Loading = v
	o.snapMu.Unlock()
}
