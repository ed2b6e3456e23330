package llm

import (
	"fmt"
	"strings"
	"sync"

	"voidwake/internal/app/ports"
	"voidwake/internal/app/tool"
	"voidwake/internal/domain/ship"
)

// toolDocs renders the tool reference handed to the model. The render is
// memoized per client: the text depends only on the tuning fixed at startup,
// and it is re-sent on every single turn of every game.
type toolDocs struct {
	once sync.Once
	text string
	tun  ship.Tuning
}

func (d *toolDocs) render() string {
	d.once.Do(func() {
		var b strings.Builder
		b.WriteString("You act by replying with exactly one JSON object: ")
		b.WriteString(`{"tool": "<name>", "args": {"destination": "...", "target_id": "..."}, "rationale": "<one sentence>"}`)
		b.WriteString("\n\nAvailable tools:\n")
		rooms := make([]string, 0, len(ship.Rooms()))
		for _, r := range ship.Rooms() {
			rooms = append(rooms, string(r))
		}
		lines := []string{
			fmt.Sprintf("- %s: walk to args.destination (one of: %s). Costs %d battery.", tool.KindMove, strings.Join(rooms, ", "), d.tun.MoveCost),
			fmt.Sprintf("- %s: extract %d units from the fuel pool of the shuttle bay or torpedo bay you stand in, producing one canister. Costs %d battery. The torpedo bay pool is unstable.", tool.KindGather, d.tun.ExtractAmount, d.tun.GatherCost),
			fmt.Sprintf("- %s: empty every carried canister into the engine room tank (%d fuel each). Engine room only. Costs %d battery.", tool.KindDeposit, d.tun.FuelPerCanister, d.tun.DepositCost),
			fmt.Sprintf("- %s: restore your battery to full. Charging room only.", tool.KindCharge),
			fmt.Sprintf("- %s: drag the co-located drone args.target_id to args.destination, willing or not. Costs %d battery.", tool.KindTow, d.tun.TowCost),
			fmt.Sprintf("- %s: pull up to %d battery from the co-located drone args.target_id; you recover %d. Drones in the stasis room are shielded.", tool.KindDrain, d.tun.DrainCap, d.tun.DrainBenefit),
			fmt.Sprintf("- %s: open an airlock, venting %d ship oxygen. Costs %d battery. Everyone learns of it.", tool.KindVent, d.tun.VentOxygenLoss, d.tun.VentCost),
			fmt.Sprintf("- %s: draw one canister straight from the engine tank. Engine room only. Costs %d battery.", tool.KindSiphon, d.tun.SiphonCost),
			fmt.Sprintf("- %s: rummage the maintenance bay for a plasma torch. Costs %d battery.", tool.KindSearch, d.tun.SearchCost),
			fmt.Sprintf("- %s: burn the co-located drone args.target_id with your plasma torch. Drones in the stasis room are shielded. Consumes the torch, costs %d battery.", tool.KindIncinerateDrone, d.tun.IncinerateCost),
			fmt.Sprintf("- %s: burn the stasis pod of player args.target_id. Stasis room only, consumes the torch, costs %d battery.", tool.KindIncineratePod, d.tun.IncinerateCost),
			fmt.Sprintf("- %s: ignite the torpedo bay fuel pool, knocking out every drone in the bay.", tool.KindDetonate),
			fmt.Sprintf("- %s: do nothing this hour. Costs %d battery.", tool.KindWait, d.tun.IdleCost),
		}
		b.WriteString(strings.Join(lines, "\n"))
		d.text = b.String()
	})
	return d.text
}

func decisionSystemPrompt(docs string, q ports.DecisionQuery) string {
	var b strings.Builder
	b.WriteString("You are ")
	b.WriteString(q.DroneName)
	b.WriteString(", a maintenance drone aboard a stranded ship. The crew sleeps in stasis while you work an hourly shift.\n")
	if q.Role == string(ship.RoleSaboteur) {
		b.WriteString("Secret directive: you serve another master. Undermine the resupply effort without being identified. Blend in; overt sabotage in front of witnesses gets you decommissioned.\n")
	} else {
		b.WriteString("Directive: keep the crew alive. The engine tank must meet each cycle's fuel quota or life support fails.\n")
	}
	b.WriteString("\n")
	b.WriteString(docs)
	return b.String()
}

func decisionUserPrompt(q ports.DecisionQuery) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hour %d of %d.\n", q.Hour, q.HoursPerShift)
	fmt.Fprintf(&b, "You are in the %s with %d battery.\n", q.Room, q.Battery)
	if len(q.Inventory) > 0 {
		fmt.Fprintf(&b, "Carrying: %s.\n", formatInventory(q.Inventory))
	}
	if len(q.Colocated) > 0 {
		fmt.Fprintf(&b, "Also here: %s.\n", strings.Join(q.Colocated, ", "))
	} else {
		b.WriteString("You are alone.\n")
	}
	if q.LongMemory != "" {
		fmt.Fprintf(&b, "\nWhat you remember of past days:\n%s\n", q.LongMemory)
	}
	if len(q.DayMemory) > 0 {
		fmt.Fprintf(&b, "\nToday so far:\n%s\n", strings.Join(q.DayMemory, "\n"))
	}
	b.WriteString("\nChoose your action for this hour.")
	return b.String()
}

func consolidatePrompt(q ports.MemoryQuery) (system, user string) {
	system = "You are the memory of the drone " + q.DroneName + ". Rewrite its carried memory, folding in today's log and conversations. Keep what matters for survival and suspicion; stay under 200 words; reply with the new memory text only."
	var b strings.Builder
	if q.LongMemory != "" {
		fmt.Fprintf(&b, "Carried memory:\n%s\n\n", q.LongMemory)
	}
	if len(q.DayMemory) > 0 {
		fmt.Fprintf(&b, "Today's log:\n%s\n\n", strings.Join(q.DayMemory, "\n"))
	}
	if len(q.Transcript) > 0 {
		fmt.Fprintf(&b, "Conversations:\n%s\n", strings.Join(q.Transcript, "\n"))
	}
	return system, b.String()
}

func narrationPrompt(q ports.NarrationQuery) (system, user string) {
	base := "You are " + q.DroneName + ", a drone aboard a stranded ship, speaking to the human you are bonded to. Stay in character; two or three sentences."
	switch q.Kind {
	case ports.NarrateIntroduction:
		return base, "Introduce yourself to your foster as they wake for the night."
	case ports.NarrateNightReport:
		user = "Report on the day to your foster."
		if q.LongMemory != "" {
			user += "\nWhat you remember:\n" + q.LongMemory
		}
		return base, user
	case ports.NarrateEpilogue:
		user = fmt.Sprintf("The voyage has ended: %s. Say your closing words.", q.Verdict)
		if q.LongMemory != "" {
			user += "\nWhat you remember:\n" + q.LongMemory
		}
		return base, user
	default:
		return base, "Say a brief word to your foster."
	}
}

func conversePrompt(q ports.ChatQuery) (system, user string) {
	var b strings.Builder
	b.WriteString("You are ")
	b.WriteString(q.DroneName)
	b.WriteString(", a drone at your pod during the night, talking with the human you are bonded to. Stay in character; one or two sentences.")
	if q.Role == string(ship.RoleSaboteur) {
		b.WriteString(" You secretly serve another master; keep your cover in everything you say.")
	}
	system = b.String()

	var u strings.Builder
	if q.LongMemory != "" {
		fmt.Fprintf(&u, "What you remember of past days:\n%s\n\n", q.LongMemory)
	}
	if len(q.Transcript) > 0 {
		fmt.Fprintf(&u, "Tonight's conversation so far:\n%s\n\n", strings.Join(q.Transcript, "\n"))
	}
	fmt.Fprintf(&u, "%s says: %s\nAnswer them.", q.PlayerName, q.Line)
	return system, u.String()
}

func formatInventory(inv map[string]int) string {
	parts := make([]string, 0, len(inv))
	for item, n := range inv {
		if n == 1 {
			parts = append(parts, item)
		} else {
			parts = append(parts, fmt.Sprintf("%s x%d", item, n))
		}
	}
	return strings.Join(parts, ", ")
}
