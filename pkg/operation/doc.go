/*
Package operation turns a resolved duplication request into written blueprints.

	+-----------+     +-----------+     +-----------+
	|  Resolve  | --> | Duplicate | --> |  Runner   |
	| (prompts) |     | (plan)    |     | (copies)  |
	+-----------+     +-----------+     +-----------+

🎯 Purpose:
- Completes a config into a Plan, asking for whatever is missing
- Extracts the source identity once and renders one copy per number
- Hands the rendered bytes to the library for storage

🔄 Flow:
1. ResolveLibrary / ResolvePlan fill in folder, blueprint, first index and count
2. Duplicate loads the source and asks every overwrite question up front
3. The Runner executes one copy operation per number, sync or async
4. Each copy is reported through the log package

⚡ Async:
Copies are independent, so the async runner fans them out over an errgroup
bounded by Workers. The first failure cancels copies that have not started.

🔍 Example:

	plan, err := operation.ResolvePlan(ctx, prompter, lib, cfg)
	res, err := operation.Duplicate(ctx, plan, operation.Options{Prompter: prompter, Logger: console})

Preview renders the first copy without writing it and returns a line diff.
*/
package operation
