/*
Package config loads the settings of a whamdup run.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |   HCL   | |  .env +   |
	|  Parser   | | Parser  | |  WHAMDUP_ |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Reads an optional .whamdup.yaml, .whamdup.yml or .whamdup.hcl file
- Applies WHAMDUP_* environment overrides, including ones from a .env file
- Validates index and copy bounds and fills defaults

🔄 Precedence (highest first):
 1. command line flags (applied by the CLI)
 2. environment
 3. config file
 4. Default()

🔍 Example:

	cfg, err := config.Load(ctx, ".whamdup.yaml")
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
*/
package config
