/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage implements project persistence.
// It handles create/open/save for the canonical JSON manifest (frameflow.json) with transactional writes and timestamped backups,
// stores image asset originals as PNG files under <project>/assets, and keeps crash-recovery autosaves in the per‑project
// embedded SQLite database at <project>/.ffw/autosave.sqlite. The autosave database is derived state and disposable.
package storage
